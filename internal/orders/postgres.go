package orders

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/ariefcatur/go-shop-backend/internal/catalog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgStore is the Postgres-backed Store. InTx opens one transaction for the
// whole placement; ProductForUpdate takes a row lock, so two placements
// racing for the same product's last units serialize and the loser sees the
// decremented quantity.
type PgStore struct{ DB *pgxpool.Pool }

func (s *PgStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct{ tx pgx.Tx }

const productCols = `id, name, price::text, vat::text, price_gross::text, quantity, created_at, updated_at`

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	var price, vat, gross string
	err := row.Scan(&p.ID, &p.Name, &price, &vat, &gross, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
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
	return &p, nil
}

func (t *pgTx) ProductForUpdate(ctx context.Context, id string) (*catalog.Product, error) {
	return scanProduct(t.tx.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1 FOR UPDATE`, id))
}

func (t *pgTx) SaveProduct(ctx context.Context, p *catalog.Product) error {
	// Only quantity is mutated on the order path.
	_, err := t.tx.Exec(ctx,
		`UPDATE products SET quantity=$2, updated_at=$3 WHERE id=$1`,
		p.ID, p.Quantity, p.UpdatedAt)
	return err
}

func (t *pgTx) InsertOrder(ctx context.Context, o *Order) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, placed_at, total_net, total_gross)
		VALUES ($1,$2,$3,$4::numeric,$5::numeric)`,
		o.ID, o.UserID, o.PlacedAt, o.TotalNet.String(), o.TotalGross.String())
	if err != nil {
		return err
	}
	for i, it := range o.Items {
		_, err = t.tx.Exec(ctx, `
			INSERT INTO order_items(order_id, position, product_id, qty, net_price, gross_price)
			VALUES ($1,$2,$3,$4,$5::numeric,$6::numeric)`,
			o.ID, i, it.ProductID, it.Qty, it.NetPrice.String(), it.GrossPrice.String())
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *PgStore) OrderByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	var net, gross string
	err := s.DB.QueryRow(ctx,
		`SELECT id, user_id, placed_at, total_net::text, total_gross::text FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserID, &o.PlacedAt, &net, &gross)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if o.TotalNet, err = decimal.NewFromString(net); err != nil {
		return nil, err
	}
	if o.TotalGross, err = decimal.NewFromString(gross); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
		SELECT product_id, qty, net_price::text, gross_price::text
		FROM order_items WHERE order_id=$1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		var itemNet, itemGross string
		if err := rows.Scan(&it.ProductID, &it.Qty, &itemNet, &itemGross); err != nil {
			return nil, err
		}
		if it.NetPrice, err = decimal.NewFromString(itemNet); err != nil {
			return nil, err
		}
		if it.GrossPrice, err = decimal.NewFromString(itemGross); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PgStore) ProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	return scanProduct(s.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

func (s *PgStore) UserByID(ctx context.Context, id string) (*auth.User, error) {
	users := &auth.PgUsers{DB: s.DB}
	return users.UserByID(ctx, id)
}
