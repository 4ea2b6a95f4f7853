package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// CheckoutStore commits a payment insert and the matching cart cleanup in a
// single multi-document transaction. Requires a replica set or sharded cluster.
type CheckoutStore struct {
	client   *mongo.Client
	payments *PaymentRepository
	carts    *CartRepository
}

func NewCheckoutStore(db *mongo.Database) *CheckoutStore {
	return &CheckoutStore{
		client:   db.Client(),
		payments: NewPaymentRepository(db),
		carts:    NewCartRepository(db),
	}
}

type finalizeOutcome struct {
	insertedID string
	deleted    int64
}

func (s *CheckoutStore) FinalizeAtomic(ctx context.Context, rec *domain.PaymentRecord, email string, cartItemIDs []string) (string, int64, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return "", 0, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		id, err := s.payments.Insert(sc, rec)
		if err != nil {
			return nil, err
		}
		var deleted int64
		if len(cartItemIDs) > 0 {
			deleted, err = s.carts.DeleteOwned(sc, email, cartItemIDs)
			if err != nil {
				return nil, err
			}
		}
		return finalizeOutcome{insertedID: id, deleted: deleted}, nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("checkout transaction: %w", err)
	}

	res := out.(finalizeOutcome)
	return res.insertedID, res.deleted, nil
}
