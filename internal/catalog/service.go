package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductExists  = errors.New("a product with this name already exists")
	ErrInvalidProduct = errors.New("invalid product")
)

type Store interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	InsertProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context) ([]Product, error)
}

type NewProduct struct {
	Name     string
	Price    decimal.Decimal
	VAT      decimal.Decimal
	Quantity int
}

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log}
}

// Add creates a catalog product. The gross price is derived and stored here;
// nothing on the order path ever recomputes it.
func (s *Service) Add(ctx context.Context, np NewProduct) (*Product, error) {
	if err := validate(np); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByName(ctx, np.Name)
	if err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if exists {
		s.log.Warn("product rejected, name taken", "name", np.Name)
		return nil, ErrProductExists
	}

	now := time.Now().UTC()
	p := &Product{
		ID:         uuid.NewString(),
		Name:       np.Name,
		Price:      np.Price,
		VAT:        np.VAT,
		PriceGross: GrossPrice(np.Price, np.VAT),
		Quantity:   np.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	s.log.Info("product added", "name", p.Name, "gross", p.PriceGross.String())
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.ListProducts(ctx)
}

func validate(np NewProduct) error {
	switch {
	case np.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case np.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case np.Price.Exponent() < -2:
		return fmt.Errorf("%w: price has more than 2 decimal places", ErrInvalidProduct)
	case np.VAT.IsNegative() || np.VAT.GreaterThan(decimal.NewFromInt(100)):
		return fmt.Errorf("%w: vat must be between 0 and 100", ErrInvalidProduct)
	case np.VAT.Exponent() < -2:
		return fmt.Errorf("%w: vat has more than 2 decimal places", ErrInvalidProduct)
	case np.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	}
	return nil
}
