package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const subscriptionsTable = "subscriptions"

var subscriptionColumns = []string{"subscription_id", "customer_id", "start_date", "end_date", "mrr_amount"}

type SubscriptionRepository interface {
	List(ctx context.Context) ([]domain.Subscription, error)
	UpsertMany(ctx context.Context, subscriptions []domain.Subscription) error
}

type subscriptionRepository struct {
	conn *postgres.Connection
}

func NewSubscriptionRepository(conn *postgres.Connection) SubscriptionRepository {
	return &subscriptionRepository{
		conn: conn,
	}
}

func (r *subscriptionRepository) List(ctx context.Context) ([]domain.Subscription, error) {
	query, args, err := squirrel.
		Select(subscriptionColumns...).
		From(subscriptionsTable).
		OrderBy("customer_id ASC", "start_date ASC", "subscription_id ASC").
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

	subscriptions := make([]domain.Subscription, 0)
	for rows.Next() {
		var (
			s       domain.Subscription
			endDate sql.NullTime
		)

		if err := rows.Scan(&s.ID, &s.CustomerID, &s.StartDate, &endDate, &s.MRRAmount); err != nil {
			return nil, fmt.Errorf("erro ao escanear assinatura: %w", err)
		}

		if endDate.Valid {
			end := endDate.Time
			s.EndDate = &end
		}

		subscriptions = append(subscriptions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return subscriptions, nil
}

// UpsertMany grava as assinaturas; assinaturas existentes são sobrescritas pelo ID
func (r *subscriptionRepository) UpsertMany(ctx context.Context, subscriptions []domain.Subscription) error {
	values := make([][]any, 0, len(subscriptions))
	for _, s := range subscriptions {
		var endDate any
		if s.EndDate != nil {
			endDate = *s.EndDate
		}
		values = append(values, []any{s.ID, s.CustomerID, s.StartDate, endDate, s.MRRAmount})
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return insertInBatches(ctx, tx, subscriptionsTable, subscriptionColumns, values, `
			ON CONFLICT (subscription_id) DO UPDATE SET
				customer_id = EXCLUDED.customer_id,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				mrr_amount = EXCLUDED.mrr_amount
		`)
	})
}
