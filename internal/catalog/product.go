package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal // net unit price
	VAT        decimal.Decimal // percentage, 0..100
	PriceGross decimal.Decimal // derived from Price+VAT at creation
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GrossPrice derives the VAT-inclusive unit price, rounded to 2 decimal
// places (half away from zero). Rounding happens exactly once, here; all
// later order arithmetic works on the stored 2-dp value.
func GrossPrice(net, vat decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(vat.Div(decimal.NewFromInt(100)))
	return net.Mul(factor).Round(2)
}
