package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const customersTable = "customers"

var customerColumns = []string{"customer_id", "customer_name", "industry", "country", "signup_date", "initial_plan", "is_active"}

type CustomerRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Customer, error)
	GetByID(ctx context.Context, customerID string) (*domain.Customer, error)
	UpsertMany(ctx context.Context, customers []domain.Customer) error
	UpdateActiveFlags(ctx context.Context, customers []domain.Customer) error
}

type customerRepository struct {
	conn *postgres.Connection
}

func NewCustomerRepository(conn *postgres.Connection) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Customer, error) {
	builder := squirrel.
		Select(customerColumns...).
		From(customersTable).
		OrderBy("customer_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		customers = append(customers, *customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, nil
}

// GetByID retorna nil, nil quando o cliente não existe
func (r *customerRepository) GetByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	customer, err := scanCustomer(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) UpsertMany(ctx context.Context, customers []domain.Customer) error {
	values := make([][]any, 0, len(customers))
	for _, c := range customers {
		values = append(values, []any{c.CustomerID, c.CustomerName, c.Industry, c.Country, nullableDate(c.SignupDate), c.InitialPlan, c.IsActive})
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return insertInBatches(ctx, tx, customersTable, customerColumns, values, `
			ON CONFLICT (customer_id) DO UPDATE SET
				customer_name = EXCLUDED.customer_name,
				industry = EXCLUDED.industry,
				country = EXCLUDED.country,
				signup_date = EXCLUDED.signup_date,
				initial_plan = EXCLUDED.initial_plan,
				updated_at = NOW()
		`)
	})
}

// UpdateActiveFlags grava somente o is_active de cada cliente
func (r *customerRepository) UpdateActiveFlags(ctx context.Context, customers []domain.Customer) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, c := range customers {
			query, args, err := squirrel.
				Update(customersTable).
				Set("is_active", c.IsActive).
				Set("updated_at", squirrel.Expr("NOW()")).
				Where(squirrel.Eq{"customer_id": c.CustomerID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return wrapExecError(err)
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		c          domain.Customer
		signupDate sql.NullTime
	)

	err := row.Scan(
		&c.CustomerID,
		&c.CustomerName,
		&c.Industry,
		&c.Country,
		&signupDate,
		&c.InitialPlan,
		&c.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if signupDate.Valid {
		c.SignupDate = signupDate.Time
	}

	return &c, nil
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
