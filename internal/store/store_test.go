package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shulebus/shulebus/internal/importer"
)

func TestWrapPgError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "parents_phone_number_key"}

	err := wrapPgError(pgErr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.Contains(t, err.Error(), "parents_phone_number_key")

	// The reworded error must map onto the duplicate-key user message.
	assert.Equal(t, "DB001", importer.MapRemoteError(err).Code)
}

func TestWrapPgError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "vehicles_driver_phone_fkey"}

	err := wrapPgError(pgErr)
	assert.Contains(t, err.Error(), "foreign key")
	assert.Equal(t, "DB002", importer.MapRemoteError(err).Code)
}

func TestWrapPgError_WrapsOther(t *testing.T) {
	inner := errors.New("connection refused")
	err := wrapPgError(inner)
	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, "DB003", importer.MapRemoteError(err).Code)
}

func TestWrapPgError_WrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "drivers_license_number_key"}
	wrapped := fmt.Errorf("exec insert: %w", pgErr)

	err := wrapPgError(wrapped)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("Parent@2024")
	require.NoError(t, err)
	assert.NotEqual(t, "Parent@2024", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Parent@2024")))
}

func TestToPgText(t *testing.T) {
	empty := toPgText("")
	assert.False(t, empty.Valid)

	full := toPgText("Kilimani")
	assert.True(t, full.Valid)
	assert.Equal(t, "Kilimani", full.String)
}

func TestCreate_UnsupportedRecord(t *testing.T) {
	st := New(nil)
	_, err := st.Create(context.Background(), fakeRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported record type")
}

type fakeRecord struct{}

func (fakeRecord) EntityType() importer.EntityType { return importer.EntityParents }
