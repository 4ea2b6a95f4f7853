package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

// Cart and menu ids are kept as the strings the client submitted.
type paymentDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Email         string             `bson:"email"`
	Price         float64            `bson:"price"`
	TransactionID string             `bson:"transactionId"`
	CartItems     []string           `bson:"cartItems"`
	MenuItems     []string           `bson:"menuItems,omitempty"`
	ItemNames     []string           `bson:"itemNames,omitempty"`
	Date          time.Time          `bson:"date"`
}

// Insert appends a payment record. Records are never updated.
func (r *PaymentRepository) Insert(ctx context.Context, rec *domain.PaymentRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cartItems := rec.CartItemIDs
	if cartItems == nil {
		cartItems = []string{}
	}
	res, err := r.col.InsertOne(ctx, paymentDoc{
		ID:            primitive.NewObjectID(),
		Email:         rec.Email,
		Price:         rec.Price,
		TransactionID: rec.TransactionID,
		CartItems:     cartItems,
		MenuItems:     rec.MenuItemIDs,
		ItemNames:     rec.ItemNames,
		Date:          rec.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("insert payment: %w", err)
	}
	return insertedID(res), nil
}
