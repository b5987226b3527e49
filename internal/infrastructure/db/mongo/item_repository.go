package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

const collectionItems = "items"

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection(collectionItems)}
}

type mongoItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       string             `bson:"image,omitempty"`
	LargeImage  string             `bson:"large_image,omitempty"`
	PriceCents  int64              `bson:"price_cents"`
	UserID      string             `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mi *mongoItem) toDomain() *domain.Item {
	return &domain.Item{
		ID:          mi.ID.Hex(),
		Title:       mi.Title,
		Description: mi.Description,
		Image:       mi.Image,
		LargeImage:  mi.LargeImage,
		PriceCents:  mi.PriceCents,
		UserID:      mi.UserID,
		CreatedAt:   mi.CreatedAt,
		UpdatedAt:   mi.UpdatedAt,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoItem{
		Title:       item.Title,
		Description: item.Description,
		Image:       item.Image,
		LargeImage:  item.LargeImage,
		PriceCents:  item.PriceCents,
		UserID:      item.UserID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoItem
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *ItemRepository) Update(ctx context.Context, id string, update ports.ItemUpdate) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.LargeImage != nil {
		set["large_image"] = *update.LargeImage
	}
	if update.PriceCents != nil {
		set["price_cents"] = *update.PriceCents
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoItem
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) List(ctx context.Context, page, limit int) ([]domain.Item, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.Item, 0, limit)
	for cursor.Next(ctx) {
		var mi mongoItem
		if err := cursor.Decode(&mi); err != nil {
			return nil, 0, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, *mi.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}
	return items, total, nil
}

// Search matches the term case-insensitively against title and description.
func (r *ItemRepository) Search(ctx context.Context, term string, limit int) ([]domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
	}}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.Item, 0, limit)
	for cursor.Next(ctx) {
		var mi mongoItem
		if err := cursor.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, *mi.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
