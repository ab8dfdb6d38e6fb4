// Package admin is the password-gated back office: list orders, inspect
// payment data, delete records. Access tokens live in a token store so a
// logged-in operator survives a page reload or a process restart.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
	"github.com/google/uuid"
)

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrNotAuthenticated = errors.New("not authenticated")
)

type Service struct {
	repo     order.Repository
	tokens   TokenStore
	password string
}

func NewService(repo order.Repository, tokens TokenStore, password string) *Service {
	return &Service{repo: repo, tokens: tokens, password: password}
}

// Login exchanges the passphrase for an access token.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrInvalidPassword
	}

	token := uuid.New().String()
	if err := s.tokens.Set(ctx, token); err != nil {
		return "", fmt.Errorf("store admin token: %w", err)
	}
	return token, nil
}

// Authenticate checks a previously issued token.
func (s *Service) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	ok, err := s.tokens.Exists(ctx, token)
	if err != nil {
		return fmt.Errorf("check admin token: %w", err)
	}
	if !ok {
		return ErrNotAuthenticated
	}
	return nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Delete(ctx, token)
}

// ListOrders returns all orders newest-first with card data masked,
// except for the single order named by reveal (uuid.Nil reveals none).
func (s *Service) ListOrders(ctx context.Context, token string, reveal uuid.UUID) ([]*order.Order, error) {
	if err := s.Authenticate(ctx, token); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i, o := range orders {
		if o.ID == reveal {
			continue
		}
		orders[i] = maskedCopy(o)
	}
	return orders, nil
}

func (s *Service) DeleteOrder(ctx context.Context, token string, id uuid.UUID) error {
	if err := s.Authenticate(ctx, token); err != nil {
		return err
	}
	return s.repo.DeleteOrder(ctx, id)
}

// maskedCopy hides the card number down to its last four digits and the
// CVV entirely. PIX orders carry no card fields and pass through as-is.
func maskedCopy(o *order.Order) *order.Order {
	if o.CardNumber == nil && o.CardCVV == nil {
		return o
	}

	masked := *o
	if o.CardNumber != nil {
		masked.CardNumber = strPtr(maskCardNumber(*o.CardNumber))
	}
	if o.CardCVV != nil {
		masked.CardCVV = strPtr("***")
	}
	return &masked
}

func maskCardNumber(number string) string {
	trimmed := strings.ReplaceAll(number, " ", "")
	if len(trimmed) < 4 {
		return "****"
	}
	return "**** **** **** " + trimmed[len(trimmed)-4:]
}

func strPtr(s string) *string {
	return &s
}
