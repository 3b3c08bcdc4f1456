package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

const productsCollection = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProductName string             `bson:"product_name"`
	Category    string             `bson:"category"`
	Quantity    int                `bson:"quantity"`
	Price       float64            `bson:"price"`
	Supplier    string             `bson:"supplier"`
	ImageURL    string             `bson:"image_url,omitempty"`
}

func fromProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		ProductName: p.ProductName,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Supplier:    p.Supplier,
		ImageURL:    p.ImageURL,
	}
}

func (mp mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		ProductName: mp.ProductName,
		Category:    mp.Category,
		Quantity:    mp.Quantity,
		Price:       mp.Price,
		Supplier:    mp.Supplier,
		ImageURL:    mp.ImageURL,
	}
}

// productFilter translates the inventory filters into a Mongo query.
func productFilter(f ports.ProductFilter) bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Supplier != "" {
		q["supplier"] = f.Supplier
	}
	if f.MaxStock != nil {
		q["quantity"] = bson.M{"$lte": *f.MaxStock}
	}
	return q
}

func (r *ProductRepository) List(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, productFilter(f), options.Find().SetSort(bson.D{{Key: "product_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromProduct(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// Update replaces every writable field of the product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromProduct(p)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock only matches while quantity >= qty, so two concurrent sales
// can never drive stock below zero.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "quantity": bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{"quantity": -qty}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoProduct
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mp)
	if err == nil {
		return mp.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	// No match: either the product is gone or there is not enough stock.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrProductNotFound
	}
	return nil, domain.ErrInsufficientStock
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"quantity": qty}})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the inventory filters.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "supplier", Value: 1}}},
		{Keys: bson.D{{Key: "quantity", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
