package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const customerMonthMRRTable = "customer_month_mrr"

var customerMonthMRRColumns = []string{"customer_id", "month", "mrr"}

type CustomerMonthMRRRepository interface {
	ReplaceAll(ctx context.Context, rows []domain.CustomerMonthMRR) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerMonthMRR, error)
}

type customerMonthMRRRepository struct {
	conn *postgres.Connection
}

func NewCustomerMonthMRRRepository(conn *postgres.Connection) CustomerMonthMRRRepository {
	return &customerMonthMRRRepository{
		conn: conn,
	}
}

// ReplaceAll substitui a linha do tempo inteira em uma única transação
func (r *customerMonthMRRRepository) ReplaceAll(ctx context.Context, rows []domain.CustomerMonthMRR) error {
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, []any{row.CustomerID, row.Month, row.MRR})
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, customerMonthMRRTable); err != nil {
			return err
		}
		return insertInBatches(ctx, tx, customerMonthMRRTable, customerMonthMRRColumns, values, "")
	})
}

func (r *customerMonthMRRRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerMonthMRR, error) {
	query, args, err := squirrel.
		Select(customerMonthMRRColumns...).
		From(customerMonthMRRTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	timeline := make([]domain.CustomerMonthMRR, 0)
	for rows.Next() {
		var row domain.CustomerMonthMRR
		if err := rows.Scan(&row.CustomerID, &row.Month, &row.MRR); err != nil {
			return nil, fmt.Errorf("erro ao escanear MRR mensal: %w", err)
		}
		timeline = append(timeline, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return timeline, nil
}
