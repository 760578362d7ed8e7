package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest is one (product, quantity) entry of a placement request, in
// submission order.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// Order is the immutable record of a placed order. It is created exactly
// once, inside the placement transaction, and never mutated afterwards.
type Order struct {
	ID         string
	UserID     string
	PlacedAt   time.Time
	Items      []OrderItem
	TotalNet   decimal.Decimal
	TotalGross decimal.Decimal
}

// OrderItem snapshots the order-time prices for one line. NetPrice and
// GrossPrice are the line totals (unit price times quantity).
type OrderItem struct {
	ProductID  string
	Qty        int
	NetPrice   decimal.Decimal
	GrossPrice decimal.Decimal
}

// Placement is what the orchestrator hands back on success.
type Placement struct {
	OrderID    string
	TotalNet   decimal.Decimal
	TotalGross decimal.Decimal
	Summaries  []string
	Items      []OrderItem
}

// Details is the read-side projection of a placed order.
type Details struct {
	OrderID    string
	Customer   Customer
	Items      []ItemDetail
	TotalNet   decimal.Decimal
	TotalGross decimal.Decimal
}

type Customer struct {
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Country     string
	City        string
	Street      string
	PostalCode  string
}

type ItemDetail struct {
	ProductID   string
	ProductName string
	Qty         int
	NetPrice    decimal.Decimal
	GrossPrice  decimal.Decimal
}
