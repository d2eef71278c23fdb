// Package repository holds the gorm backed stores used by the services.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Badalsingh25/CraftConnect/services"
)

var (
	_ services.Transactor   = (*Transactor)(nil)
	_ services.UserStore    = (*UserRepository)(nil)
	_ services.ProductStore = (*ProductRepository)(nil)
	_ services.CouponStore  = (*CouponRepository)(nil)
	_ services.OrderStore   = (*OrderRepository)(nil)
	_ services.ReviewStore  = (*ReviewRepository)(nil)
)

type txKey struct{}

// base resolves the connection a store call runs on: the transaction carried
// by ctx when there is one, the pool otherwise.
type base struct {
	db *gorm.DB
}

func (b base) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return b.db.WithContext(ctx)
}

// Transactor runs functions in a database transaction
type Transactor struct {
	base
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{base{db: db}}
}

// Transaction runs fn in a transaction that store calls made with the
// context passed to fn join. A call inside an open transaction reuses it.
func (t *Transactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func notFoundIfNone(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
