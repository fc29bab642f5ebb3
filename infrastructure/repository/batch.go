package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
)

// O Postgres aceita no máximo 65535 parâmetros por comando
const maxParamsPerStatement = 65535

// insertInBatches insere as linhas em lotes que respeitam o limite de parâmetros
func insertInBatches(ctx context.Context, q postgres.Queryer, table string, columns []string, rows [][]any, suffix string) error {
	if len(rows) == 0 {
		return nil
	}

	batchSize := maxParamsPerStatement / len(columns)

	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		insert := squirrel.Insert(table).
			Columns(columns...).
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows[start:end] {
			insert = insert.Values(row...)
		}

		if suffix != "" {
			insert = insert.Suffix(suffix)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return wrapExecError(err)
		}
	}

	return nil
}

// deleteAll limpa a tabela antes de uma substituição completa
func deleteAll(ctx context.Context, q postgres.Queryer, table string) error {
	query, args, err := squirrel.Delete(table).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func wrapExecError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
