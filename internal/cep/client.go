// Package cep resolves Brazilian postal codes to addresses through ViaCEP,
// with one fallback attempt through an alternate routing endpoint before
// giving up. Callers treat ErrUnavailable as "let the user type the
// address in".
package cep

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/mask"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidCEP  = errors.New("cep must have exactly 8 digits")
	ErrNotFound    = errors.New("cep not found")
	ErrUnavailable = errors.New("cep lookup unavailable")
)

// Address is the tuple consumed by the checkout flow.
type Address struct {
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	fallbackURL string
	sfg         singleflight.Group // collapses concurrent lookups of the same code
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:     "https://viacep.com.br/ws",
		fallbackURL: "https://api.allorigins.win/raw?url=",
	}
}

// Lookup resolves the postal code, trying the direct endpoint first and the
// routed fallback second. The code must contain exactly 8 digits.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	digits := mask.Digits(code)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	v, err, _ := c.sfg.Do(digits, func() (interface{}, error) {
		direct := fmt.Sprintf("%s/%s/json/", c.baseURL, digits)

		addr, errDirect := c.fetch(ctx, direct)
		if errDirect == nil || errors.Is(errDirect, ErrNotFound) {
			return addr, errDirect
		}

		routed := c.fallbackURL + url.QueryEscape(direct)
		addr, errRouted := c.fetch(ctx, routed)
		if errRouted == nil || errors.Is(errRouted, ErrNotFound) {
			return addr, errRouted
		}

		return nil, fmt.Errorf("%w: %v", ErrUnavailable, errRouted)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Address), nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build cep request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Address
		// ViaCEP signals unknown codes with an "erro" flag instead of a
		// non-200 status. Older responses use a bool, newer ones a string.
		Erro json.RawMessage `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode cep response: %w", err)
	}

	if errFlagSet(payload.Erro) {
		return nil, ErrNotFound
	}

	addr := payload.Address
	return &addr, nil
}

func errFlagSet(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	return !bytes.Equal(raw, []byte("false")) && !bytes.Equal(raw, []byte(`"false"`))
}
