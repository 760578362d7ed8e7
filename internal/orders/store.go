package orders

import (
	"context"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/ariefcatur/go-shop-backend/internal/catalog"
)

// Tx is the persistence surface visible inside one placement transaction.
// ProductForUpdate must lock the product row for the remainder of the
// transaction so concurrent placements competing for the same stock
// serialize; lookups return nil (no error) when the row is absent.
type Tx interface {
	ProductForUpdate(ctx context.Context, id string) (*catalog.Product, error)
	SaveProduct(ctx context.Context, p *catalog.Product) error
	InsertOrder(ctx context.Context, o *Order) error
}

// Store is the persistence boundary of the order engine. InTx runs fn inside
// a single atomic unit of work: every reservation and the final order insert
// commit together or not at all.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error

	OrderByID(ctx context.Context, id string) (*Order, error)
	ProductByID(ctx context.Context, id string) (*catalog.Product, error)
	UserByID(ctx context.Context, id string) (*auth.User, error)
}
