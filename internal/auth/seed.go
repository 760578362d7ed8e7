package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the default admin account if no user named "admin"
// exists yet. Meant for first boot of a fresh database.
func EnsureAdmin(ctx context.Context, users UserStore, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	existing, err := users.UserByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("lookup admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FirstName:    "admin",
		LastName:     "admin",
		PhoneNumber:  "123456789",
		Country:      "Poland",
		City:         "Warsaw",
		Street:       "Admin Street 1",
		PostalCode:   "00-001",
		Roles:        []Role{RoleAdmin},
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.InsertUser(ctx, admin); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	log.Info("seeded admin user", "email", admin.Email)
	return nil
}
