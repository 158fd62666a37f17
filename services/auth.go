// Package services contains the business logic: credential management,
// session resolution, and ownership-scoped todo CRUD. Handlers translate
// the sentinel errors returned here into HTTP responses.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"todo-service/common"
	"todo-service/models"
	"todo-service/storage"

	"github.com/google/uuid"
)

const usersCollection = "users"

// AuthService handles registration, login, and bearer-token resolution
// against the users collection.
type AuthService struct {
	store *storage.Store
}

// NewAuthService creates an AuthService backed by the given store.
func NewAuthService(store *storage.Store) *AuthService {
	return &AuthService{store: store}
}

// Register creates a new user with a hashed password and no session token.
// The email is the unique natural key: a second registration with the same
// email fails with common.ErrConflict.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}

	return storage.Update(s.store, usersCollection, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, fmt.Errorf("%w: user with email %s", common.ErrConflict, email)
			}
		}
		return append(users, models.User{
			ID:           uuid.New().String(),
			Name:         name,
			Email:        email,
			PasswordHash: hashPassword(password),
			Token:        nil,
		}), nil
	})
}

// Login verifies the credentials and mints a fresh opaque token. The token
// replaces any previously issued one, so at most one session per user is
// valid at a time.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, name string, err error) {
	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	err = storage.Update(s.store, usersCollection, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Email != email {
				continue
			}
			if users[i].PasswordHash != hashPassword(password) {
				return nil, fmt.Errorf("%w: invalid credentials", common.ErrAuthentication)
			}
			fresh, err := newToken()
			if err != nil {
				return nil, err
			}
			users[i].Token = &fresh
			token = fresh
			name = users[i].Name
			return users, nil
		}
		return nil, fmt.Errorf("%w: user with email %s", common.ErrNotFound, email)
	})
	if err != nil {
		return "", "", err
	}
	return token, name, nil
}

// Resolve looks up the user holding the given bearer token. There is no
// expiry: a token stays valid until a later login overwrites it.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", common.ErrAuthentication)
	}

	users, err := storage.Load[models.User](s.store, usersCollection)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Token != nil && *users[i].Token == token {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown token", common.ErrAuthentication)
}

// hashPassword computes the hex SHA-256 digest of the plaintext. The digest
// is deterministic and unsalted, matching the stored credential format.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// newToken generates a cryptographically random 16-byte hex token.
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
