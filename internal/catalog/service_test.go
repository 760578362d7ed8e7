package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byName map[string]*Product
}

func newFakeStore() *fakeStore { return &fakeStore{byName: map[string]*Product{}} }

func (s *fakeStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok := s.byName[name]
	return ok, nil
}

func (s *fakeStore) InsertProduct(ctx context.Context, p *Product) error {
	cp := *p
	s.byName[p.Name] = &cp
	return nil
}

func (s *fakeStore) ListProducts(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(s.byName))
	for _, p := range s.byName {
		out = append(out, *p)
	}
	return out, nil
}

func TestGrossPrice(t *testing.T) {
	tests := []struct {
		net, vat, want string
	}{
		{"10.00", "23", "12.30"},
		{"10.00", "0", "10.00"},
		{"0.99", "7", "1.06"},  // 1.0593 rounds up
		{"1.13", "8", "1.22"},  // 1.2204 rounds down
		{"0.01", "50", "0.02"}, // 0.015 rounds half away from zero
		{"100", "8.5", "108.50"},
	}
	for _, tt := range tests {
		got := GrossPrice(decimal.RequireFromString(tt.net), decimal.RequireFromString(tt.vat))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"GrossPrice(%s, %s) = %s, want %s", tt.net, tt.vat, got, tt.want)
	}
}

func TestAddDerivesGrossOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	p, err := svc.Add(ctx, NewProduct{
		Name:     "Widget",
		Price:    decimal.RequireFromString("10.00"),
		VAT:      decimal.RequireFromString("23"),
		Quantity: 5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.PriceGross.Equal(decimal.RequireFromString("12.30")))
	assert.Equal(t, 5, p.Quantity)
}

func TestAddDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	np := NewProduct{Name: "Widget", Price: decimal.RequireFromString("1.00"), VAT: decimal.RequireFromString("23")}
	_, err := svc.Add(ctx, np)
	require.NoError(t, err)

	_, err = svc.Add(ctx, np)
	require.ErrorIs(t, err, ErrProductExists)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		np   NewProduct
	}{
		{"empty name", NewProduct{Price: decimal.RequireFromString("1.00")}},
		{"negative price", NewProduct{Name: "X", Price: decimal.RequireFromString("-1.00")}},
		{"price with 3 decimals", NewProduct{Name: "X", Price: decimal.RequireFromString("1.005")}},
		{"vat over 100", NewProduct{Name: "X", Price: decimal.RequireFromString("1.00"), VAT: decimal.RequireFromString("101")}},
		{"negative vat", NewProduct{Name: "X", Price: decimal.RequireFromString("1.00"), VAT: decimal.RequireFromString("-1")}},
		{"vat with 3 decimals", NewProduct{Name: "X", Price: decimal.RequireFromString("1.00"), VAT: decimal.RequireFromString("8.125")}},
		{"negative quantity", NewProduct{Name: "X", Price: decimal.RequireFromString("1.00"), Quantity: -1}},
	}
	svc := NewService(newFakeStore(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.np)
			require.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}
