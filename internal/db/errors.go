package db

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories care about.
const (
	codeUndefinedColumn     = "42703"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// columnNameRe pulls the column name out of messages like
// `column "location" of relation "photos" does not exist`.
var columnNameRe = regexp.MustCompile(`column "([^"]+)"`)

// MissingColumnError reports that a statement referenced a column the
// current schema does not have. Column may be empty when the name could
// not be recovered from the server message.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Column)
}

// ClassifyError translates known pgconn error codes into package-level
// typed errors; any other error is returned unchanged.
func ClassifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code == codeUndefinedColumn {
		col := pgErr.ColumnName
		if col == "" {
			if m := columnNameRe.FindStringSubmatch(pgErr.Message); m != nil {
				col = m[1]
			}
		}
		return &MissingColumnError{Column: col}
	}
	return err
}

// AsMissingColumn reports whether err is a MissingColumnError and
// returns it when so.
func AsMissingColumn(err error) (*MissingColumnError, bool) {
	var mce *MissingColumnError
	if errors.As(err, &mce) {
		return mce, true
	}
	return nil, false
}

// IsForeignKeyViolation checks whether an error is a PostgreSQL
// foreign_key_violation (code 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// IsUniqueViolation checks whether an error is a PostgreSQL
// unique_violation (code 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
