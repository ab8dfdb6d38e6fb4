package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(cred *Credentials) (*PostgresRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (
	            id, customer_name, customer_email, customer_phone, customer_cpf,
	            address_cep, address_street, address_number, address_complement,
	            address_neighborhood, address_city, address_state,
	            payment_method, card_number, card_name, card_expiry, card_cvv,
	            items, subtotal, shipping, total, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	                  $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, NOW())`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.CustomerCPF,
		order.AddressCEP,
		order.AddressStreet,
		order.AddressNumber,
		order.AddressComplement,
		order.AddressNeighborhood,
		order.AddressCity,
		order.AddressState,
		order.PaymentMethod,
		order.CardNumber,
		order.CardName,
		order.CardExpiry,
		order.CardCVV,
		itemsJSON,
		order.Subtotal,
		order.Shipping,
		order.Total,
		order.Status)

	if insertErr != nil {
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]*Order, error) {
	query := `SELECT id, customer_name, customer_email, customer_phone, customer_cpf,
	                 address_cep, address_street, address_number, address_complement,
	                 address_neighborhood, address_city, address_state,
	                 payment_method, card_number, card_name, card_expiry, card_cvv,
	                 items, subtotal, shipping, total, status, created_at
	          FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func scanOrder(rows *sql.Rows) (*Order, error) {
	var order Order
	var itemsJSON []byte
	err := rows.Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.CustomerCPF,
		&order.AddressCEP,
		&order.AddressStreet,
		&order.AddressNumber,
		&order.AddressComplement,
		&order.AddressNeighborhood,
		&order.AddressCity,
		&order.AddressState,
		&order.PaymentMethod,
		&order.CardNumber,
		&order.CardName,
		&order.CardExpiry,
		&order.CardCVV,
		&itemsJSON,
		&order.Subtotal,
		&order.Shipping,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &order, nil
}
