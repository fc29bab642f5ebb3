package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const portfolioMetricsTable = "monthly_portfolio_metrics"

var portfolioMetricsColumns = append([]string{domain.ColumnMonth}, domain.MetricColumns...)

type PortfolioMetricsRepository interface {
	ReplaceAll(ctx context.Context, metrics []domain.MonthlyPortfolioMetrics) error
	List(ctx context.Context) ([]domain.MonthlyPortfolioMetrics, error)
	GetAllPeriods(ctx context.Context) ([]string, error)
}

type portfolioMetricsRepository struct {
	conn *postgres.Connection
}

func NewPortfolioMetricsRepository(conn *postgres.Connection) PortfolioMetricsRepository {
	return &portfolioMetricsRepository{
		conn: conn,
	}
}

func (r *portfolioMetricsRepository) ReplaceAll(ctx context.Context, metrics []domain.MonthlyPortfolioMetrics) error {
	values := make([][]any, 0, len(metrics))
	for _, m := range metrics {
		values = append(values, []any{
			m.Month,
			m.MRRTotal,
			m.NewMRR,
			m.ExpansionMRR,
			m.ContractionMRR,
			m.ChurnMRR,
			m.NetNewMRR,
			m.ActiveCustomers,
			m.RevenueChurnRate,
		})
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, portfolioMetricsTable); err != nil {
			return err
		}
		return insertInBatches(ctx, tx, portfolioMetricsTable, portfolioMetricsColumns, values, "")
	})
}

// List retorna todas as métricas em ordem crescente de mês
func (r *portfolioMetricsRepository) List(ctx context.Context) ([]domain.MonthlyPortfolioMetrics, error) {
	query, args, err := squirrel.
		Select(portfolioMetricsColumns...).
		From(portfolioMetricsTable).
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

	metrics := make([]domain.MonthlyPortfolioMetrics, 0)
	for rows.Next() {
		var m domain.MonthlyPortfolioMetrics
		err := rows.Scan(
			&m.Month,
			&m.MRRTotal,
			&m.NewMRR,
			&m.ExpansionMRR,
			&m.ContractionMRR,
			&m.ChurnMRR,
			&m.NetNewMRR,
			&m.ActiveCustomers,
			&m.RevenueChurnRate,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas mensais: %w", err)
		}
		metrics = append(metrics, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

// GetAllPeriods retorna todos os períodos disponíveis no formato yyyy-mm
func (r *portfolioMetricsRepository) GetAllPeriods(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT month").
		From(portfolioMetricsTable).
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

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}
