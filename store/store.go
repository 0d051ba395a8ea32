// Package store is the typed CRUD adapter in front of the content tables.
// Every mutation passes the table allow-list and the per-table column schema
// before any SQL is issued.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/coinpass/be-content-platform/pkg/logger"
)

var (
	// ErrForbiddenTable is returned for mutations outside the allow-list.
	ErrForbiddenTable = errors.New("table not allowed")
	// ErrUnknownColumn is returned when a write names a column outside the
	// table's schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrBadUpsertKey is returned when UpsertByKey is called with a key
	// column the table does not upsert on.
	ErrBadUpsertKey = errors.New("invalid upsert key column")
	// ErrRowNotFound is returned by QueryOne when no row matches.
	ErrRowNotFound = errors.New("row not found")
)

// QueryOpts narrows a read.
type QueryOpts struct {
	Filters map[string]interface{} // column -> value, combined with AND
	OrderBy string
	Desc    bool
	Limit   int
}

// Adapter issues CRUD against the content tables.
type Adapter struct {
	db  *sqlx.DB
	log logger.Logger
}

// New creates a store adapter.
func New(db *sqlx.DB, log logger.Logger) *Adapter {
	return &Adapter{db: db, log: log.WithComponent("store")}
}

// Select reads rows from table into dest (a pointer to a slice of structs).
func (a *Adapter) Select(ctx context.Context, dest interface{}, table string, opts QueryOpts) error {
	query, args, err := buildSelect(table, opts)
	if err != nil {
		return err
	}
	if err := a.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

// SelectOrEmpty reads rows into dest and swallows store failures: the error
// is logged and dest keeps its zero value, so callers render an empty
// section instead of crashing. "No data" and "store unreachable" look the
// same from the outside.
func (a *Adapter) SelectOrEmpty(ctx context.Context, dest interface{}, table string, opts QueryOpts) {
	if err := a.Select(ctx, dest, table, opts); err != nil {
		a.log.Error("Read failed, degrading to empty result", err, logger.Table(table))
	}
}

// SelectOne reads a single row from table into dest. ErrRowNotFound is
// returned when nothing matches.
func (a *Adapter) SelectOne(ctx context.Context, dest interface{}, table string, opts QueryOpts) error {
	opts.Limit = 1
	query, args, err := buildSelect(table, opts)
	if err != nil {
		return err
	}
	if err := a.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRowNotFound
		}
		return fmt.Errorf("select one %s: %w", table, err)
	}
	return nil
}

// Insert adds a row and returns the server-assigned id.
func (a *Adapter) Insert(ctx context.Context, table string, cols map[string]interface{}) (int64, error) {
	names, args, err := checkColumns(table, cols)
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, fmt.Errorf("insert %s: %w", table, ErrUnknownColumn)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, created_at, updated_at) VALUES (%s, NOW(), NOW())",
		quoteIdent(table), joinIdents(names), placeholders,
	)

	res, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: last id: %w", table, err)
	}
	return id, nil
}

// Update patches a row by id.
func (a *Adapter) Update(ctx context.Context, table string, id int64, patch map[string]interface{}) error {
	names, args, err := checkColumns(table, patch)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("update %s: %w", table, ErrUnknownColumn)
	}

	sets := make([]string, len(names))
	for i, n := range names {
		sets[i] = quoteIdent(n) + " = ?"
	}
	query := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = NOW() WHERE id = ?",
		quoteIdent(table), strings.Join(sets, ", "),
	)
	args = append(args, id)

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete removes a row by id.
func (a *Adapter) Delete(ctx context.Context, table string, id int64) error {
	if !writableTables[table] {
		return fmt.Errorf("delete %s: %w", table, ErrForbiddenTable)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", quoteIdent(table))
	if _, err := a.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// UpsertByKey inserts or replaces the single row identified by keyCol.
// Implemented as an atomic ON DUPLICATE KEY UPDATE so two concurrent saves
// of the same key cannot produce duplicate rows; the key columns carry
// unique indexes in the schema.
func (a *Adapter) UpsertByKey(ctx context.Context, table, keyCol string, keyVal interface{}, cols map[string]interface{}) error {
	if upsertKeys[table] != keyCol {
		if !writableTables[table] {
			return fmt.Errorf("upsert %s: %w", table, ErrForbiddenTable)
		}
		return fmt.Errorf("upsert %s by %s: %w", table, keyCol, ErrBadUpsertKey)
	}

	merged := make(map[string]interface{}, len(cols)+1)
	for k, v := range cols {
		merged[k] = v
	}
	merged[keyCol] = keyVal

	names, args, err := checkColumns(table, merged)
	if err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	updates := make([]string, 0, len(names))
	for _, n := range names {
		if n == keyCol {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", quoteIdent(n), quoteIdent(n)))
	}
	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) ON DUPLICATE KEY UPDATE %s",
		quoteIdent(table), joinIdents(names), placeholders, strings.Join(updates, ", "),
	)

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

// Health runs a cheap count-only probe, independently callable before a
// batch of reads.
func (a *Adapter) Health(ctx context.Context) error {
	var n int64
	if err := a.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM page_contents"); err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	return nil
}

// --- query building ---

func buildSelect(table string, opts QueryOpts) (string, []interface{}, error) {
	if _, ok := tableColumns[table]; !ok {
		return "", nil, fmt.Errorf("select %s: %w", table, ErrForbiddenTable)
	}
	orderable := orderableColumns(table)

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(quoteIdent(table))

	var args []interface{}
	if len(opts.Filters) > 0 {
		names := make([]string, 0, len(opts.Filters))
		for n := range opts.Filters {
			if !orderable[n] {
				return "", nil, fmt.Errorf("filter %s.%s: %w", table, n, ErrUnknownColumn)
			}
			names = append(names, n)
		}
		sort.Strings(names)

		sb.WriteString(" WHERE ")
		for i, n := range names {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			sb.WriteString(quoteIdent(n))
			sb.WriteString(" = ?")
			args = append(args, opts.Filters[n])
		}
	}

	if opts.OrderBy != "" {
		if !orderable[opts.OrderBy] {
			return "", nil, fmt.Errorf("order by %s.%s: %w", table, opts.OrderBy, ErrUnknownColumn)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(quoteIdent(opts.OrderBy))
		if opts.Desc {
			sb.WriteString(" DESC")
		}
	}

	if opts.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", opts.Limit))
	}

	return sb.String(), args, nil
}

// checkColumns validates cols against the table schema and returns the
// column names sorted for deterministic SQL.
func checkColumns(table string, cols map[string]interface{}) ([]string, []interface{}, error) {
	if !writableTables[table] {
		return nil, nil, fmt.Errorf("write %s: %w", table, ErrForbiddenTable)
	}
	schema := tableColumns[table]

	names := make([]string, 0, len(cols))
	for n := range cols {
		if !schema[n] {
			return nil, nil, fmt.Errorf("write %s.%s: %w", table, n, ErrUnknownColumn)
		}
		names = append(names, n)
	}
	sort.Strings(names)

	args := make([]interface{}, len(names))
	for i, n := range names {
		args[i] = cols[n]
	}
	return names, args, nil
}

func quoteIdent(name string) string {
	return "`" + name + "`"
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}
