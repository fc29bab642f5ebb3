package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const revenueEventsTable = "revenue_events"

var revenueEventColumns = []string{"event_id", "customer_id", "event_month", "event_date", "event_type", "mrr_delta", "mrr_after_event"}

type RevenueEventRepository interface {
	ReplaceAll(ctx context.Context, events []domain.RevenueEvent) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.RevenueEvent, error)
}

type revenueEventRepository struct {
	conn *postgres.Connection
}

func NewRevenueEventRepository(conn *postgres.Connection) RevenueEventRepository {
	return &revenueEventRepository{
		conn: conn,
	}
}

func (r *revenueEventRepository) ReplaceAll(ctx context.Context, events []domain.RevenueEvent) error {
	values := make([][]any, 0, len(events))
	for _, e := range events {
		values = append(values, []any{e.EventID, e.CustomerID, e.EventMonth, e.EventDate, string(e.EventType), e.MRRDelta, e.MRRAfterEvent})
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, revenueEventsTable); err != nil {
			return err
		}
		return insertInBatches(ctx, tx, revenueEventsTable, revenueEventColumns, values, "")
	})
}

func (r *revenueEventRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.RevenueEvent, error) {
	query, args, err := squirrel.
		Select(revenueEventColumns...).
		From(revenueEventsTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("event_month ASC").
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

	events := make([]domain.RevenueEvent, 0)
	for rows.Next() {
		var (
			e         domain.RevenueEvent
			eventType string
		)

		err := rows.Scan(
			&e.EventID,
			&e.CustomerID,
			&e.EventMonth,
			&e.EventDate,
			&eventType,
			&e.MRRDelta,
			&e.MRRAfterEvent,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear evento de receita: %w", err)
		}

		e.EventType = domain.RevenueEventType(eventType)
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}
