package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore lookups return nil (no error) when the user does not exist.
type UserStore interface {
	UserByID(ctx context.Context, id string) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	InsertUser(ctx context.Context, u *User) error
}

// SessionStore maps opaque bearer tokens to user ids. Get returns "" for an
// unknown token.
type SessionStore interface {
	Put(ctx context.Context, token, userID string) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type Registration struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Country     string
	City        string
	Street      string
	PostalCode  string
}

type Service struct {
	users    UserStore
	sessions SessionStore
	log      *slog.Logger
}

func NewService(users UserStore, sessions SessionStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{users: users, sessions: sessions, log: log}
}

func (s *Service) Register(ctx context.Context, reg Registration) (*User, error) {
	exists, err := s.users.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.log.Warn("registration rejected, email taken", "email", reg.Email)
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PhoneNumber:  reg.PhoneNumber,
		Country:      reg.Country,
		City:         reg.City,
		Street:       reg.Street,
		PostalCode:   reg.PostalCode,
		Roles:        []Role{RoleUser},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.InsertUser(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	s.log.Info("registered user", "email", u.Email)
	return u, nil
}

// Login verifies the credentials and opens a session. The returned token is
// an opaque uuid the caller presents as a bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Put(ctx, token, u.ID); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// UserByToken resolves a bearer token to its user. Returns nil without error
// when the token has no session.
func (s *Service) UserByToken(ctx context.Context, token string) (*User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if userID == "" {
		return nil, nil
	}
	return s.users.UserByID(ctx, userID)
}
