package repository

import (
	"context"

	"forestry-backend/internal/dbctx"

	"gorm.io/gorm"
)

// TransactionManager manages database transactions via context injection.
// Repositories and the workflow engine resolve the active transaction through
// dbctx, so a bulk workflow invocation and its audit entry commit atomically.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Inject(ctx, tx))
	})
}

// GetDB extracts the transaction DB from context if present, otherwise returns root DB.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	return dbctx.Get(ctx, rootDB)
}
