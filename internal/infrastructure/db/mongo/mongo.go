package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "smartshelf-api"
)

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store owns the MongoDB client and the SmartShelf repositories built on it.
type Store struct {
	client *mongo.Client

	Users    *UserRepository
	Products *ProductRepository
	Sales    *SaleRepository
}

// Open connects, pings the primary and wires the repositories.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		return nil, errors.New("mongo: database name is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:   client,
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Sales:    NewSaleRepository(db),
	}, nil
}

// EnsureIndexes creates every collection index. All collections are tried;
// the failures are joined.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	var errs []error
	for name, ensure := range map[string]func(context.Context) error{
		usersCollection:    s.Users.EnsureIndexes,
		productsCollection: s.Products.EnsureIndexes,
		salesCollection:    s.Sales.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s indexes: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Ping is the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
