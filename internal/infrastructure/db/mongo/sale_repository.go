package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

const salesCollection = "sales"

type SaleRepository struct {
	col *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{col: db.Collection(salesCollection)}
}

type mongoSale struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ProductID    string             `bson:"product_id"`
	ProductName  string             `bson:"product_name"`
	QuantitySold int                `bson:"quantity_sold"`
	SaleDate     time.Time          `bson:"sale_date"`
}

func (ms mongoSale) toDomain() *domain.Sale {
	return &domain.Sale{
		ID:           ms.ID.Hex(),
		ProductID:    ms.ProductID,
		ProductName:  ms.ProductName,
		QuantitySold: ms.QuantitySold,
		SaleDate:     ms.SaleDate.UTC(),
	}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSale{
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		QuantitySold: s.QuantitySold,
		SaleDate:     s.SaleDate.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// FindBetween returns sales ordered by date, newest first.
func (r *SaleRepository) FindBetween(ctx context.Context, start, end time.Time) ([]*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, saleDateFilter(start, end), options.Find().SetSort(bson.D{{Key: "sale_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoSale
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}

	out := make([]*domain.Sale, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func saleDateFilter(start, end time.Time) bson.M {
	rng := bson.M{}
	if !start.IsZero() {
		rng["$gte"] = start.UTC()
	}
	if !end.IsZero() {
		rng["$lte"] = end.UTC()
	}
	if len(rng) == 0 {
		return bson.M{}
	}
	return bson.M{"sale_date": rng}
}

// EnsureIndexes creates the indexes used by reports and the forecast window.
func (r *SaleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sale_date", Value: -1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "sale_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
