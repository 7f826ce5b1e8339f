package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource loads the registry from a Postgres table. One row per
// column spec:
//
//	CREATE TABLE pipeline_schemas (
//	    source_name   text NOT NULL,
//	    column_name   text NOT NULL,
//	    target_type   text NOT NULL,
//	    value_mapping jsonb,
//	    choices       text[],
//	    PRIMARY KEY (source_name, column_name)
//	);
type PostgresSource struct {
	DSN   string
	Table string // defaults to "pipeline_schemas"
}

func (s PostgresSource) table() string {
	if s.Table == "" {
		return "pipeline_schemas"
	}
	return s.Table
}

// Load connects, reads every schema row and assembles the registry. The
// connection is per-call: schema resolution happens once per run.
func (s PostgresSource) Load(ctx context.Context) (Registry, error) {
	pool, err := pgxpool.New(ctx, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect schema store: %w", err)
	}
	defer pool.Close()

	query := fmt.Sprintf(
		"SELECT source_name, column_name, target_type, value_mapping, choices FROM %s", s.table())
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query schema store: %w", err)
	}
	defer rows.Close()

	reg := Registry{}
	for rows.Next() {
		var (
			source, column, targetType string
			mappingJSON                []byte
			choices                    []string
		)
		if err := rows.Scan(&source, &column, &targetType, &mappingJSON, &choices); err != nil {
			return nil, fmt.Errorf("scan schema row: %w", err)
		}

		spec := ColumnSpec{Type: ColumnType(targetType), Choices: choices}
		if len(mappingJSON) > 0 {
			if err := json.Unmarshal(mappingJSON, &spec.ValueMapping); err != nil {
				return nil, fmt.Errorf("decode value mapping for %s.%s: %w", source, column, err)
			}
		}

		if reg[source] == nil {
			reg[source] = Schema{}
		}
		reg[source][column] = spec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read schema rows: %w", err)
	}
	if len(reg) == 0 {
		return nil, fmt.Errorf("schema store %s is empty", s.table())
	}
	return reg, nil
}
