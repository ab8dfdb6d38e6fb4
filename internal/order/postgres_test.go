package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*PostgresRepository, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "../../migrations/orders",
	}

	repo, err := NewPostgresRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func newTestOrder() *Order {
	cardNumber := "1234 5678 9012 3456"
	cardName := "MARIA A SILVA"
	cardExpiry := "12/27"
	cardCVV := "123"
	return &Order{
		ID:                  uuid.New(),
		CustomerName:        "Maria Silva",
		CustomerEmail:       "maria@example.com",
		CustomerPhone:       "(48) 99152-1638",
		CustomerCPF:         "123.456.789-01",
		AddressCEP:          "88010-000",
		AddressStreet:       "Rua Felipe Schmidt",
		AddressNumber:       "100",
		AddressNeighborhood: "Centro",
		AddressCity:         "Florianópolis",
		AddressState:        "SC",
		PaymentMethod:       PaymentCard,
		CardNumber:          &cardNumber,
		CardName:            &cardName,
		CardExpiry:          &cardExpiry,
		CardCVV:             &cardCVV,
		Items: []Item{
			{ID: 1, Name: "HORI Split Pad Compact", Brand: "HORI", Price: 369.99, Quantity: 1, Image: "/assets/hori-main.png"},
		},
		Subtotal: 369.99,
		Shipping: 19.40,
		Total:    389.39,
		Status:   StatusUnderReview,
	}
}

func TestCreateAndListOrders(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	order1 := newTestOrder()
	require.NoError(t, repo.CreateOrder(ctx, order1))

	// Small sleep to ensure different created_at timestamps
	time.Sleep(10 * time.Millisecond)

	order2 := newTestOrder()
	order2.ID = uuid.New()
	order2.PaymentMethod = PaymentPix
	order2.CardNumber = nil
	order2.CardName = nil
	order2.CardExpiry = nil
	order2.CardCVV = nil
	require.NoError(t, repo.CreateOrder(ctx, order2))

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Newest first
	assert.Equal(t, order2.ID, orders[0].ID)
	assert.Equal(t, order1.ID, orders[1].ID)

	assert.Equal(t, StatusUnderReview, orders[1].Status)
	assert.Nil(t, orders[0].CardNumber)
	require.NotNil(t, orders[1].CardNumber)
	assert.Equal(t, "1234 5678 9012 3456", *orders[1].CardNumber)
	require.Len(t, orders[1].Items, 1)
	assert.Equal(t, int64(1), orders[1].Items[0].ID)
}

func TestDeleteOrder(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	order := newTestOrder()
	require.NoError(t, repo.CreateOrder(ctx, order))

	require.NoError(t, repo.DeleteOrder(ctx, order.ID))

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
