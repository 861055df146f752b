// Package store persists created entities and import-job history in
// PostgreSQL. It supplies the create capability the import pipeline drives:
// Store satisfies importer.RecordCreator.
package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"

	"github.com/shulebus/shulebus/internal/importer"
	"github.com/shulebus/shulebus/internal/schema"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is the subset of pgx operations the store needs. Satisfied by both
// *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store is a PostgreSQL-backed record creator and job-history repository.
type Store struct {
	db DBTX
}

// New creates a Store. db is usually a *pgxpool.Pool; tests can pass a
// pgx.Tx to keep their writes rollback-able.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables the store needs if they do not exist.
// Called once on startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Create persists one normalized record and returns the created entity.
// Implements importer.RecordCreator.
func (s *Store) Create(ctx context.Context, rec importer.Record) (importer.Entity, error) {
	switch r := rec.(type) {
	case schema.ParentRecord:
		return s.createParent(ctx, r)
	case schema.DriverRecord:
		return s.createDriver(ctx, r)
	case schema.VehicleRecord:
		return s.createVehicle(ctx, r)
	case schema.StaffRecord:
		return s.createStaff(ctx, r)
	default:
		return importer.Entity{}, fmt.Errorf("unsupported record type %T", rec)
	}
}

const insertParent = `
INSERT INTO parents (id, first_name, last_name, email, phone_number, password_hash, address, preferred_contact_method)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (s *Store) createParent(ctx context.Context, r schema.ParentRecord) (importer.Entity, error) {
	hash, err := hashPassword(r.Password)
	if err != nil {
		return importer.Entity{}, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(ctx, insertParent,
		uuid.New(), r.FirstName, r.LastName, r.Email, r.PhoneNumber,
		hash, toPgText(r.Address), r.PreferredContactMethod,
	).Scan(&id)
	if err != nil {
		return importer.Entity{}, wrapPgError(err)
	}

	return importer.Entity{
		ID:          id.String(),
		Type:        importer.EntityParents,
		DisplayName: r.FirstName + " " + r.LastName,
	}, nil
}

const insertDriver = `
INSERT INTO drivers (id, first_name, last_name, email, phone_number, license_number, password_hash)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (s *Store) createDriver(ctx context.Context, r schema.DriverRecord) (importer.Entity, error) {
	hash, err := hashPassword(r.Password)
	if err != nil {
		return importer.Entity{}, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(ctx, insertDriver,
		uuid.New(), r.FirstName, r.LastName, r.Email, r.PhoneNumber,
		r.LicenseNumber, hash,
	).Scan(&id)
	if err != nil {
		return importer.Entity{}, wrapPgError(err)
	}

	return importer.Entity{
		ID:          id.String(),
		Type:        importer.EntityDrivers,
		DisplayName: r.FirstName + " " + r.LastName,
	}, nil
}

const insertVehicle = `
INSERT INTO vehicles (id, registration_number, make, model, capacity, driver_phone)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (s *Store) createVehicle(ctx context.Context, r schema.VehicleRecord) (importer.Entity, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, insertVehicle,
		uuid.New(), r.RegistrationNumber, toPgText(r.Make), toPgText(r.Model),
		r.Capacity, toPgText(r.DriverPhone),
	).Scan(&id)
	if err != nil {
		return importer.Entity{}, wrapPgError(err)
	}

	return importer.Entity{
		ID:          id.String(),
		Type:        importer.EntityVehicles,
		DisplayName: r.RegistrationNumber,
	}, nil
}

const insertStaff = `
INSERT INTO staff (id, first_name, last_name, email, phone_number, role, password_hash)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (s *Store) createStaff(ctx context.Context, r schema.StaffRecord) (importer.Entity, error) {
	hash, err := hashPassword(r.Password)
	if err != nil {
		return importer.Entity{}, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(ctx, insertStaff,
		uuid.New(), r.FirstName, r.LastName, r.Email, r.PhoneNumber,
		r.Role, hash,
	).Scan(&id)
	if err != nil {
		return importer.Entity{}, wrapPgError(err)
	}

	return importer.Entity{
		ID:          id.String(),
		Type:        importer.EntityStaff,
		DisplayName: r.FirstName + " " + r.LastName,
	}, nil
}

// hashPassword bcrypt-hashes a plaintext password before it touches the
// database. Default cost is plenty for bulk-created accounts that must be
// rotated on first login anyway.
func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// toPgText converts a string to pgtype.Text, NULL when empty.
func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// wrapPgError rewords constraint violations so the importer's remote-error
// mapping recognizes them; everything else passes through wrapped.
func wrapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate key: %s", pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("foreign key: %s", pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("insert record: %w", err)
}
