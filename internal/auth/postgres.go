package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUsers is the Postgres-backed UserStore.
type PgUsers struct{ DB *pgxpool.Pool }

const userCols = `id, username, email, password_hash, first_name, last_name,
	phone_number, country, city, street, postal_code, roles, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var roles []string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName,
		&u.LastName, &u.PhoneNumber, &u.Country, &u.City, &u.Street,
		&u.PostalCode, &roles, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Roles = make([]Role, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, Role(r))
	}
	return &u, nil
}

func (s *PgUsers) UserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (s *PgUsers) UserByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

func (s *PgUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	return exists, err
}

func (s *PgUsers) InsertUser(ctx context.Context, u *User) error {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	_, err := s.DB.Exec(ctx, `
		INSERT INTO users(id, username, email, password_hash, first_name, last_name,
		                  phone_number, country, city, street, postal_code, roles, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.PhoneNumber, u.Country, u.City, u.Street, u.PostalCode, roles, u.CreatedAt)
	return err
}
