package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

type cartDoc struct {
	ID         interface{} `bson:"_id,omitempty"`
	Email      string      `bson:"email"`
	MenuItemID string      `bson:"menuItemId,omitempty"`
	Name       string      `bson:"name,omitempty"`
	Image      string      `bson:"image,omitempty"`
	Price      float64     `bson:"price"`
}

func (d cartDoc) toDomain() *domain.CartItem {
	return &domain.CartItem{
		ID:         hexID(d.ID),
		Email:      d.Email,
		MenuItemID: d.MenuItemID,
		Name:       d.Name,
		Image:      d.Image,
		Price:      d.Price,
	}
}

func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d cartDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return d.toDomain(), nil
}

func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, cartDoc{
		ID:         primitive.NewObjectID(),
		Email:      item.Email,
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		Image:      item.Image,
		Price:      item.Price,
	})
	if err != nil {
		return "", fmt.Errorf("insert cart item: %w", err)
	}
	return insertedID(res), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete cart item: %w", err)
	}
	return res.DeletedCount, nil
}

// FindOwned returns the items among ids whose owner is email.
func (r *CartRepository) FindOwned(ctx context.Context, email string, ids []string) ([]*domain.CartItem, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, ownedFilter(email, oids))
}

// DeleteOwned removes the items among ids whose owner is email. Items owned by
// someone else are left untouched.
func (r *CartRepository) DeleteOwned(ctx context.Context, email string, ids []string) (int64, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, ownedFilter(email, oids))
	if err != nil {
		return 0, fmt.Errorf("delete cart items: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *CartRepository) find(ctx context.Context, filter bson.M) ([]*domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}
	var docs []cartDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}

	items := make([]*domain.CartItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func ownedFilter(email string, oids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": oids}, "email": email}
}
