package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// Repository is the consumed contract of the external order store: insert
// once, list newest-first, delete by id. Status updates are out of band.
type Repository interface {
	CreateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context) ([]*Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	Close() error
}
