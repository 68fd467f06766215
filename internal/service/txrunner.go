package service

import (
	"context"

	"github.com/WanderingWalnut/Grantly/core/db"
	"github.com/WanderingWalnut/Grantly/internal/store"
)

// StoreProvider hands out stores that share one transaction.
type StoreProvider interface {
	Organizations() store.OrganizationStore
}

// TxRunner commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type pgTxRunner struct {
	conn *db.DB
}

func NewTxRunner(conn *db.DB) TxRunner {
	return &pgTxRunner{conn: conn}
}

func (r *pgTxRunner) WithTx(ctx context.Context, fn func(StoreProvider) error) error {
	return r.conn.WithTx(ctx, func(q db.DBTX) error {
		return fn(store.NewStores(q))
	})
}
