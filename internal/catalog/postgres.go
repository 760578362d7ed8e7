package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgProducts is the Postgres-backed catalog Store. NUMERIC columns travel as
// text so the decimals round-trip without float conversion.
type PgProducts struct{ DB *pgxpool.Pool }

func (s *PgProducts) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE name=$1)`, name).Scan(&exists)
	return exists, err
}

func (s *PgProducts) InsertProduct(ctx context.Context, p *Product) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO products(id, name, price, vat, price_gross, quantity, created_at, updated_at)
		VALUES ($1,$2,$3::numeric,$4::numeric,$5::numeric,$6,$7,$8)`,
		p.ID, p.Name, p.Price.String(), p.VAT.String(), p.PriceGross.String(),
		p.Quantity, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *PgProducts) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, price::text, vat::text, price_gross::text, quantity, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		var price, vat, gross string
		if err := rows.Scan(&p.ID, &p.Name, &price, &vat, &gross, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if p.VAT, err = decimal.NewFromString(vat); err != nil {
			return nil, err
		}
		if p.PriceGross, err = decimal.NewFromString(gross); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
