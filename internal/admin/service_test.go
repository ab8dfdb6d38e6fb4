package admin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mu     sync.Mutex
	orders []*order.Order
}

func (m *mockRepo) CreateOrder(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]*order.Order{o}, m.orders...)
	return nil
}

func (m *mockRepo) ListOrders(_ context.Context) ([]*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*order.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *mockRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return order.ErrOrderNotFound
}

func (m *mockRepo) Close() error { return nil }

func str(s string) *string { return &s }

func cardOrder() *order.Order {
	return &order.Order{
		ID:            uuid.New(),
		CustomerName:  "Maria Silva",
		PaymentMethod: order.PaymentCard,
		CardNumber:    str("1234 5678 9012 3456"),
		CardName:      str("MARIA A SILVA"),
		CardExpiry:    str("12/27"),
		CardCVV:       str("123"),
		Status:        order.StatusUnderReview,
		CreatedAt:     time.Now().UTC(),
	}
}

func setupService(t *testing.T) (*Service, *mockRepo, *redis.Client, func()) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &mockRepo{}
	svc := NewService(repo, NewRedisTokenStore(client), "gameplanet2025")

	return svc, repo, client, func() {
		client.Close()
		mr.Close()
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogin_RightPasswordIssuesToken(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, svc.Authenticate(ctx, token))
}

func TestAuthenticate_SurvivesServiceRestart(t *testing.T) {
	svc, repo, client, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)

	// A fresh Service over the same Redis still accepts the token.
	reloaded := NewService(repo, NewRedisTokenStore(client), "gameplanet2025")
	assert.NoError(t, reloaded.Authenticate(ctx, token))
}

func TestAuthenticate_Rejections(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	assert.ErrorIs(t, svc.Authenticate(ctx, ""), ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Authenticate(ctx, "made-up"), ErrNotAuthenticated)
}

func TestLogout(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	assert.ErrorIs(t, svc.Authenticate(ctx, token), ErrNotAuthenticated)
}

func TestListOrders_MasksCardData(t *testing.T) {
	svc, repo, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	original := cardOrder()
	require.NoError(t, repo.CreateOrder(ctx, original))

	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, token, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	require.NotNil(t, orders[0].CardNumber)
	assert.Equal(t, "**** **** **** 3456", *orders[0].CardNumber)
	assert.Equal(t, "***", *orders[0].CardCVV)
	// Expiry and holder name stay visible.
	assert.Equal(t, "12/27", *orders[0].CardExpiry)

	// The stored record is untouched.
	assert.Equal(t, "1234 5678 9012 3456", *original.CardNumber)
}

func TestListOrders_RevealShowsOnlyThatOrder(t *testing.T) {
	svc, repo, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	first := cardOrder()
	second := cardOrder()
	require.NoError(t, repo.CreateOrder(ctx, first))
	require.NoError(t, repo.CreateOrder(ctx, second))

	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, token, first.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byID := map[uuid.UUID]*order.Order{orders[0].ID: orders[0], orders[1].ID: orders[1]}
	assert.Equal(t, "1234 5678 9012 3456", *byID[first.ID].CardNumber)
	assert.Equal(t, "123", *byID[first.ID].CardCVV)
	assert.Equal(t, "**** **** **** 3456", *byID[second.ID].CardNumber)
	assert.Equal(t, "***", *byID[second.ID].CardCVV)
}

func TestListOrders_PixOrdersPassThrough(t *testing.T) {
	svc, repo, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	pix := &order.Order{ID: uuid.New(), PaymentMethod: order.PaymentPix}
	require.NoError(t, repo.CreateOrder(ctx, pix))

	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, token, uuid.Nil)
	require.NoError(t, err)
	assert.Nil(t, orders[0].CardNumber)
	assert.Nil(t, orders[0].CardCVV)
}

func TestListOrders_RequiresAuth(t *testing.T) {
	svc, _, _, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.ListOrders(context.Background(), "nope", uuid.Nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDeleteOrder(t *testing.T) {
	svc, repo, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	o := cardOrder()
	require.NoError(t, repo.CreateOrder(ctx, o))

	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, token, o.ID))

	err = svc.DeleteOrder(ctx, token, o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "**** **** **** 3456", maskCardNumber("1234 5678 9012 3456"))
	assert.Equal(t, "**** **** **** 3456", maskCardNumber("1234567890123456"))
	assert.Equal(t, "****", maskCardNumber("123"))
}

func TestMemoryTokenStore(t *testing.T) {
	svc := NewService(&mockRepo{}, NewMemoryTokenStore(), "gameplanet2025")

	ctx := context.Background()
	token, err := svc.Login(ctx, "gameplanet2025")
	require.NoError(t, err)
	assert.NoError(t, svc.Authenticate(ctx, token))
	require.NoError(t, svc.Logout(ctx, token))
	assert.ErrorIs(t, svc.Authenticate(ctx, token), ErrNotAuthenticated)
}
