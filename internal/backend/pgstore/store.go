// Package pgstore is a backend.TableStore over a direct Postgres connection,
// for deployments where the gateway sits next to the database.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/agrox/fieldops/internal/backend"
)

// Store implements backend.TableStore with sqlx.
type Store struct {
	db *sqlx.DB
}

// NewPostgres opens a pooled connection with the given DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return conn, nil
}

// New wraps an open connection.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var _ backend.TableStore = (*Store)(nil)

// SelectByOwner runs SELECT cols FROM table WHERE owner = $1 ORDER BY ... LIMIT ...
func (s *Store) SelectByOwner(ctx context.Context, q backend.Query) ([]backend.Row, error) {
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			quoted[i] = pq.QuoteIdentifier(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	args := []any{}
	fmt.Fprintf(&sb, "SELECT %s FROM %s", cols, pq.QuoteIdentifier(q.Table))
	if q.OwnerColumn != "" {
		args = append(args, q.OwnerID)
		fmt.Fprintf(&sb, " WHERE %s = $%d", pq.QuoteIdentifier(q.OwnerColumn), len(args))
	}
	if q.OrderColumn != "" {
		direction := "ASC"
		if q.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", pq.QuoteIdentifier(q.OrderColumn), direction)
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	}

	rows, err := s.db.QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	numeric, err := numericColumns(rows)
	if err != nil {
		return nil, classify(err)
	}

	var out []backend.Row
	for rows.Next() {
		raw := map[string]any{}
		if err := rows.MapScan(raw); err != nil {
			return nil, classify(err)
		}
		out = append(out, normalizeRow(raw, numeric))
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Insert runs INSERT ... RETURNING *.
func (s *Store) Insert(ctx context.Context, table string, row backend.Row) (backend.Row, error) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = pq.QuoteIdentifier(k)
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = row[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if len(keys) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", pq.QuoteIdentifier(table))
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	numeric, err := numericColumns(rows)
	if err != nil {
		return nil, classify(err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, classify(err)
		}
		return nil, fmt.Errorf("pgstore: insert into %s returned no row", table)
	}
	raw := map[string]any{}
	if err := rows.MapScan(raw); err != nil {
		return nil, classify(err)
	}
	return normalizeRow(raw, numeric), nil
}

// CallRPC runs SELECT fn(...) with named arguments.
func (s *Store) CallRPC(ctx context.Context, fn string, args map[string]any) error {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]string, len(keys))
	values := make([]any, len(keys))
	for i, k := range keys {
		params[i] = fmt.Sprintf("%s => $%d", pq.QuoteIdentifier(k), i+1)
		values[i] = args[k]
	}

	query := fmt.Sprintf("SELECT %s(%s)", pq.QuoteIdentifier(fn), strings.Join(params, ", "))
	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		return classify(err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func numericColumns(rows *sqlx.Rows) (map[string]bool, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	numeric := make(map[string]bool, len(types))
	for _, t := range types {
		switch t.DatabaseTypeName() {
		case "NUMERIC", "DECIMAL", "FLOAT4", "FLOAT8":
			numeric[t.Name()] = true
		}
	}
	return numeric, nil
}

// normalizeRow turns driver byte slices into strings or floats so rows look
// like the JSON rows the REST driver returns.
func normalizeRow(raw map[string]any, numeric map[string]bool) backend.Row {
	row := make(backend.Row, len(raw))
	for k, v := range raw {
		b, ok := v.([]byte)
		if !ok {
			row[k] = v
			continue
		}
		if numeric[k] {
			if f, err := strconv.ParseFloat(string(b), 64); err == nil {
				row[k] = f
				continue
			}
		}
		row[k] = string(b)
	}
	return row
}

// classify converts driver errors into *backend.Error so the probe can read them.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		status := http.StatusBadRequest
		if pqErr.Code == "42501" {
			status = http.StatusForbidden
		}
		return fmt.Errorf("pgstore: %w", backend.NewError(string(pqErr.Code), pqErr.Message, status))
	}
	return fmt.Errorf("pgstore: %w", err)
}
