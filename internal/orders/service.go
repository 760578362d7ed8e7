package orders

import (
	"context"
	"log/slog"
	"time"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the order engine: placement orchestration and the read-side
// detail projection. Authorization on the read path belongs to the caller.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Place processes the requested items in submission order inside one
// transaction: look up each product, reserve its stock, accumulate totals,
// then persist the immutable order. Any ProductNotFound or InsufficientStock
// aborts the whole placement; the rollback undoes every decrement already
// applied in this call.
func (s *Service) Place(ctx context.Context, user *auth.User, items []ItemRequest) (*Placement, error) {
	var result *Placement

	err := s.store.InTx(ctx, func(tx Tx) error {
		totalNet := decimal.Zero
		totalGross := decimal.Zero
		orderItems := make([]OrderItem, 0, len(items))
		summaries := make([]string, 0, len(items))

		for _, req := range items {
			p, err := tx.ProductForUpdate(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return &ProductNotFoundError{ProductID: req.ProductID}
			}

			res, err := reserve(ctx, tx, p, req.Qty)
			if err != nil {
				return err
			}

			totalNet = totalNet.Add(res.Net)
			totalGross = totalGross.Add(res.Gross)
			orderItems = append(orderItems, OrderItem{
				ProductID:  p.ID,
				Qty:        req.Qty,
				NetPrice:   res.Net,
				GrossPrice: res.Gross,
			})
			summaries = append(summaries, res.Summary)
		}

		o := &Order{
			ID:         uuid.NewString(),
			UserID:     user.ID,
			PlacedAt:   s.now(),
			Items:      orderItems,
			TotalNet:   totalNet,
			TotalGross: totalGross,
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}

		result = &Placement{
			OrderID:    o.ID,
			TotalNet:   totalNet,
			TotalGross: totalGross,
			Summaries:  summaries,
			Items:      orderItems,
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.log.Error("order placement failed", "user_id", user.ID, "err", err)
		return nil, ErrOperationFailed
	}

	s.log.Info("order placed", "order_id", result.OrderID, "user_id", user.ID,
		"total_gross", result.TotalGross.String())
	return result, nil
}

// Details assembles the read-only view of a placed order: owner profile,
// line items resolved to current product names, and the stored totals.
func (s *Service) Details(ctx context.Context, orderID string) (*Details, error) {
	o, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		s.log.Error("order lookup failed", "order_id", orderID, "err", err)
		return nil, ErrOperationFailed
	}
	if o == nil {
		return nil, &OrderNotFoundError{OrderID: orderID}
	}

	u, err := s.store.UserByID(ctx, o.UserID)
	if err != nil || u == nil {
		s.log.Error("order owner lookup failed", "order_id", orderID, "user_id", o.UserID, "err", err)
		return nil, ErrOperationFailed
	}

	items := make([]ItemDetail, 0, len(o.Items))
	for _, it := range o.Items {
		p, err := s.store.ProductByID(ctx, it.ProductID)
		if err != nil || p == nil {
			s.log.Error("order item product lookup failed", "order_id", orderID, "product_id", it.ProductID, "err", err)
			return nil, ErrOperationFailed
		}
		items = append(items, ItemDetail{
			ProductID:   p.ID,
			ProductName: p.Name,
			Qty:         it.Qty,
			NetPrice:    it.NetPrice,
			GrossPrice:  it.GrossPrice,
		})
	}

	return &Details{
		OrderID: o.ID,
		Customer: Customer{
			ID:          u.ID,
			Username:    u.Username,
			Email:       u.Email,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			PhoneNumber: u.PhoneNumber,
			Country:     u.Country,
			City:        u.City,
			Street:      u.Street,
			PostalCode:  u.PostalCode,
		},
		Items:      items,
		TotalNet:   o.TotalNet,
		TotalGross: o.TotalGross,
	}, nil
}

// Owner returns the owning user id of an order, for authorization checks in
// the HTTP layer before Details is exposed.
func (s *Service) Owner(ctx context.Context, orderID string) (string, error) {
	o, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		s.log.Error("order lookup failed", "order_id", orderID, "err", err)
		return "", ErrOperationFailed
	}
	if o == nil {
		return "", &OrderNotFoundError{OrderID: orderID}
	}
	return o.UserID, nil
}
