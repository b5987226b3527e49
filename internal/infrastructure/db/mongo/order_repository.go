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

	"github.com/fitstore/storefront/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	TotalCents int64              `bson:"total_cents"`
	ChargeID   string             `bson:"charge_id"`
	Items      []domain.OrderItem `bson:"items"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (mo *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:         mo.ID.Hex(),
		UserID:     mo.UserID,
		TotalCents: mo.TotalCents,
		ChargeID:   mo.ChargeID,
		Items:      mo.Items,
		CreatedAt:  mo.CreatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
		ChargeID:   order.ChargeID,
		Items:      order.Items,
		CreatedAt:  order.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]domain.Order, 0)
	for cursor.Next(ctx) {
		var mo mongoOrder
		if err := cursor.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, *mo.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
