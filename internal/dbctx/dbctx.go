// Package dbctx carries an active gorm transaction through a context so that
// repositories and the workflow engine join the caller's transaction instead
// of opening their own. It deliberately depends on nothing but gorm; both the
// repository layer and the workflow engine sit on top of it.
package dbctx

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey struct{}

// Inject returns a context carrying tx as the active transaction.
func Inject(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// Get resolves the active transaction from ctx, falling back to root when the
// context carries none.
func Get(ctx context.Context, root *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return root.WithContext(ctx)
}
