package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Bind adapts db to the dialect. Stores write Postgres-style $N placeholders;
// on SQLite the query is rewritten to positional ? markers with the
// arguments reordered to match.
func Bind(db DBTX, dialect Dialect) DBTX {
	if dialect != DialectSQLite {
		return db
	}
	return rebinder{db: db}
}

type rebinder struct {
	db DBTX
}

func (r rebinder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q, a := Rebind(query, args)
	return r.db.ExecContext(ctx, q, a...)
}

func (r rebinder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q, a := Rebind(query, args)
	return r.db.QueryContext(ctx, q, a...)
}

func (r rebinder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	q, a := Rebind(query, args)
	return r.db.QueryRowContext(ctx, q, a...)
}

// Rebind turns $N placeholders into ? markers. A placeholder that appears
// twice yields the argument twice. Out-of-range placeholders are left as-is
// so the driver reports them.
func Rebind(query string, args []any) (string, []any) {
	var b strings.Builder
	b.Grow(len(query))
	out := make([]any, 0, len(args))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		n, err := strconv.Atoi(query[i+1 : j])
		if err != nil || n < 1 || n > len(args) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
		out = append(out, args[n-1])
		i = j - 1
	}
	return b.String(), out
}
