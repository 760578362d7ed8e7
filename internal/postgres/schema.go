package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	phone_number  TEXT NOT NULL DEFAULT '',
	country       TEXT NOT NULL DEFAULT '',
	city          TEXT NOT NULL DEFAULT '',
	street        TEXT NOT NULL DEFAULT '',
	postal_code   TEXT NOT NULL DEFAULT '',
	roles         TEXT[] NOT NULL DEFAULT '{USER}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	vat         NUMERIC(5,2)  NOT NULL CHECK (vat >= 0 AND vat <= 100),
	price_gross NUMERIC(12,2) NOT NULL CHECK (price_gross >= 0),
	quantity    INT NOT NULL CHECK (quantity >= 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users(id),
	placed_at   TIMESTAMPTZ NOT NULL,
	total_net   NUMERIC(14,2) NOT NULL,
	total_gross NUMERIC(14,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id    TEXT NOT NULL REFERENCES orders(id),
	position    INT NOT NULL,
	product_id  TEXT NOT NULL REFERENCES products(id),
	qty         INT NOT NULL CHECK (qty > 0),
	net_price   NUMERIC(14,2) NOT NULL,
	gross_price NUMERIC(14,2) NOT NULL,
	PRIMARY KEY (order_id, position)
);
`

// Migrate creates the schema if it does not exist yet. Idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
