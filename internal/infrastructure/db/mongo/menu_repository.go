package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(collectionMenu)}
}

type menuDoc struct {
	ID       interface{} `bson:"_id,omitempty"`
	Name     string      `bson:"name"`
	Recipe   string      `bson:"recipe,omitempty"`
	Image    string      `bson:"image,omitempty"`
	Category string      `bson:"category,omitempty"`
	Price    float64     `bson:"price"`
}

func (r *MenuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	var docs []menuDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	items := make([]*domain.MenuItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, &domain.MenuItem{
			ID:       hexID(d.ID),
			Name:     d.Name,
			Recipe:   d.Recipe,
			Image:    d.Image,
			Category: d.Category,
			Price:    d.Price,
		})
	}
	return items, nil
}
