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

const collectionCartItems = "cart_items"

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCartItems)}
}

// item_id is stored as an ObjectID so the cart lookup can join against the
// items collection directly.
type mongoCartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ItemID    primitive.ObjectID `bson:"item_id"`
	Quantity  int                `bson:"quantity"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mc *mongoCartItem) toDomain() *domain.CartItem {
	return &domain.CartItem{
		ID:        mc.ID.Hex(),
		UserID:    mc.UserID,
		ItemID:    mc.ItemID.Hex(),
		Quantity:  mc.Quantity,
		CreatedAt: mc.CreatedAt,
		UpdatedAt: mc.UpdatedAt,
	}
}

func (r *CartRepository) Create(ctx context.Context, ci *domain.CartItem) (*domain.CartItem, error) {
	itemOID, err := primitive.ObjectIDFromHex(ci.ItemID)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCartItem{
		UserID:    ci.UserID,
		ItemID:    itemOID,
		Quantity:  ci.Quantity,
		CreatedAt: ci.CreatedAt,
		UpdatedAt: ci.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert cart item: %w", err)
	}

	created := *ci
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CartRepository) FindByUserAndItem(ctx context.Context, userID, itemID string) (*domain.CartItem, error) {
	itemOID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	return r.findOne(ctx, bson.M{"user_id": userID, "item_id": itemOID})
}

func (r *CartRepository) IncrementQuantity(ctx context.Context, id string, by int) (*domain.CartItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCartItem
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"quantity": by},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("increment cart quantity: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCartItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// LinesByUser joins cart items with the items collection. Cart entries whose
// item has been deleted are skipped rather than surfaced as an error.
func (r *CartRepository) LinesByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionItems,
			"localField":   "item_id",
			"foreignField": "_id",
			"as":           "item",
		}}},
		{{Key: "$unwind", Value: "$item"}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate cart lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []domain.CartLine
	for cursor.Next(ctx) {
		var row struct {
			mongoCartItem `bson:",inline"`
			Item          mongoItem `bson:"item"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode cart line: %w", err)
		}
		lines = append(lines, domain.CartLine{
			CartItem: *row.mongoCartItem.toDomain(),
			Item:     *row.Item.toDomain(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}
	return lines, nil
}

func (r *CartRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return domain.ErrCartItemNotFound
		}
		oids = append(oids, oid)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{
		"user_id": userID,
		"_id":     bson.M{"$in": oids},
	})
	if err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

func (r *CartRepository) findOne(ctx context.Context, filter bson.M) (*domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCartItem
	if err := r.col.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return mc.toDomain(), nil
}

// EnsureIndexes creates the unique (user, item) pair index.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "item_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
