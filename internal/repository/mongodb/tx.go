package mongodb

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"placement-cell-backend/internal/domain"
)

type txRunner struct {
	client *mongo.Client
}

// NewTxRunner wraps the mongo client in a domain.TxRunner. Multi-document
// transactions need a replica set or mongos; against a standalone server
// the runner degrades to running fn directly, which is why cascade
// callbacks must delete dependents before owners.
func NewTxRunner(client *mongo.Client) domain.TxRunner {
	return &txRunner{client: client}
}

func (t *txRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		return fn(ctx)
	}
	return err
}

func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// IllegalOperation: "Transaction numbers are only allowed on a
		// replica set member or mongos"
		return cmdErr.Code == 20 && strings.Contains(cmdErr.Message, "Transaction")
	}
	return false
}
