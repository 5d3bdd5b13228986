package database

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

// RunInTx 在事务中执行 f，ctx 中已有事务时直接复用
func RunInTx(ctx context.Context, db *gorm.DB, f func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return f(ctx)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(NewTxContext(ctx, tx))
	})
}

func TxFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txCtxKey{}).(*gorm.DB)
	return tx
}

func NewTxContext(parent context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(parent, txCtxKey{}, tx)
}

// Conn 返回当前 ctx 绑定的事务，没有则返回 db
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
