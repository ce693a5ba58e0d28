package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ptrArg unwraps an optional filter value; nil means the column is not
// constrained.
func ptrArg[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// buildWhere assembles a WHERE clause from the non-nil entries of conds,
// returning the clause and its positional args. An empty clause is returned
// when nothing is constrained.
func buildWhere(conds map[string]any) (string, []any) {
	var parts []string
	var args []any
	for col, val := range conds {
		if val == nil {
			continue
		}
		args = append(args, val)
		parts = append(parts, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// limitOffset renders pagination as literal SQL so it composes with any
// number of preceding placeholders.
func limitOffset(limit, offset int) string {
	var b strings.Builder
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	if offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", offset)
	}
	return b.String()
}

// isUniqueViolation checks if an error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation checks if an error is a PostgreSQL foreign key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}
