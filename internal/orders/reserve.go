package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/go-shop-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// reservation is the outcome of one stock reservation: the line totals at
// order-time prices and a human-readable summary.
type reservation struct {
	Net     decimal.Decimal
	Gross   decimal.Decimal
	Summary string
}

// reserve validates stock for one line item and applies the decrement through
// the transaction, so later items of the same order see the reduced quantity.
func reserve(ctx context.Context, tx Tx, p *catalog.Product, qty int) (reservation, error) {
	if qty < 1 {
		return reservation{}, fmt.Errorf("%w: got %d for product %s", ErrInvalidQuantity, qty, p.ID)
	}
	if p.Quantity < qty {
		return reservation{}, &InsufficientStockError{
			ProductName: p.Name,
			Requested:   qty,
			Available:   p.Quantity,
		}
	}

	p.Quantity -= qty
	p.UpdatedAt = time.Now().UTC()
	if err := tx.SaveProduct(ctx, p); err != nil {
		return reservation{}, fmt.Errorf("save product %s: %w", p.ID, err)
	}

	n := decimal.NewFromInt(int64(qty))
	return reservation{
		Net:     p.Price.Mul(n),
		Gross:   p.PriceGross.Mul(n),
		Summary: fmt.Sprintf("%s x%d", p.Name, qty),
	}, nil
}
