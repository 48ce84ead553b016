package db_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotofolio/service/internal/db"
)

func TestClassifyErrorMissingColumn(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "42703",
		Message: `column "location" of relation "photos" does not exist`,
	}

	err := db.ClassifyError(fmt.Errorf("insert photo: %w", pgErr))
	mce, ok := db.AsMissingColumn(err)
	require.True(t, ok)
	assert.Equal(t, "location", mce.Column)
}

func TestClassifyErrorPrefersColumnNameField(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42703", ColumnName: "taken_at"}

	mce, ok := db.AsMissingColumn(db.ClassifyError(pgErr))
	require.True(t, ok)
	assert.Equal(t, "taken_at", mce.Column)
}

func TestClassifyErrorPassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Equal(t, plain, db.ClassifyError(plain))

	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	_, ok := db.AsMissingColumn(db.ClassifyError(pgErr))
	assert.False(t, ok)
	assert.True(t, db.IsUniqueViolation(pgErr))
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23503",
		Message: `insert or update on table "photos" violates foreign key constraint`,
	}

	assert.True(t, db.IsForeignKeyViolation(fmt.Errorf("insert photo: %w", pgErr)))
	assert.False(t, db.IsForeignKeyViolation(errors.New("other")))
}
