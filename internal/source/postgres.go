package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/table"
)

// Querier is the part of *pgxpool.Pool the loader uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres reads comments from the table named in src. The table and
// its four columns are checked against the catalog first. Rows with NULL
// or unconvertible values are skipped and logged.
func LoadPostgres(ctx context.Context, q Querier, src config.Source, logger *zap.Logger) (*table.Table, LoadStats, error) {
	var stats LoadStats
	relation := quoteRelation(src.Table)

	types, err := columnTypes(ctx, q, relation)
	if err != nil {
		return nil, stats, fmt.Errorf("introspecting %s: %w", src.Table, err)
	}
	names := columnNames(src.Columns)
	var missing []string
	for _, name := range names {
		typ, ok := types[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		logger.Debug("source column", zap.String("column", name), zap.String("type", typ))
	}
	if len(missing) > 0 {
		return nil, stats, fmt.Errorf("table %s has no columns %v", src.Table, missing)
	}

	query := buildSelectQuery(relation, names, src.Where)
	logger.Debug("loading comments", zap.String("query", query))

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, stats, fmt.Errorf("querying %s: %w", src.Table, err)
	}
	defer rows.Close()

	var cells [][]table.Cell
	n := 0
	for rows.Next() {
		n++
		values, err := rows.Values()
		if err != nil {
			return nil, stats, err
		}
		row, err := rowFromValues(values)
		if err != nil {
			logger.Warn("skipping row", zap.Int("row", n), zap.Error(err))
			stats.Skipped++
			continue
		}
		cells = append(cells, row)
		stats.Rows++
	}
	if err := rows.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading %s: %w", src.Table, err)
	}

	if stats.Skipped > 0 {
		logger.Warn("some rows were skipped", zap.Int("loaded", stats.Rows), zap.Int("skipped", stats.Skipped))
	}

	t, err := table.New(cells)
	if err != nil {
		return nil, stats, err
	}
	return t, stats, nil
}

// columnTypes returns column name -> type name for relation, which must be
// an already quoted identifier.
func columnTypes(ctx context.Context, q Querier, relation string) (map[string]string, error) {
	query := `
		SELECT
			a.attname AS column_name,
			t.typname AS data_type
		FROM pg_attribute a
		JOIN pg_type t ON t.oid = a.atttypid
		WHERE a.attrelid = to_regclass($1)
			AND a.attnum > 0
			AND NOT a.attisdropped
		ORDER BY a.attnum
	`

	rows, err := q.Query(ctx, query, relation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[string]string)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		types[name] = typ
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("relation %s not found", relation)
	}
	return types, nil
}

// quoteRelation quotes a possibly schema-qualified table name.
func quoteRelation(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// buildSelectQuery selects the given columns, in order, from relation.
func buildSelectQuery(relation string, columns [table.Width]string, where string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), relation)
	if where != "" {
		q += " WHERE " + where
	}
	return q
}

// rowFromValues converts one result row (user, content, video, label).
func rowFromValues(values []any) ([]table.Cell, error) {
	if len(values) != table.Width {
		return nil, fmt.Errorf("got %d values, want %d", len(values), table.Width)
	}
	row := make([]table.Cell, table.Width)
	for _, col := range []int{table.ColUser, table.ColContent, table.ColVideo} {
		s, ok := values[col].(string)
		if !ok {
			return nil, fmt.Errorf("column %d: expected text, got %T", col, values[col])
		}
		row[col] = table.Text(s)
	}
	label, err := parseLabel(values[table.ColLabel])
	if err != nil {
		return nil, err
	}
	row[table.ColLabel] = table.Flag(label)
	return row, nil
}
