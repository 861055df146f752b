package importer

import (
	"context"
	"fmt"
)

// EntityType selects which import specification (alias table, mandatory
// fields, assembly and validation rules) applies to a batch.
type EntityType string

const (
	EntityParents  EntityType = "parents"
	EntityDrivers  EntityType = "drivers"
	EntityVehicles EntityType = "vehicles"
	EntityStaff    EntityType = "staff"
)

// ParseEntityType validates a raw entity type string from a URL or API call.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityParents, EntityDrivers, EntityVehicles, EntityStaff:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("unknown entity type: %q", s)
}

// Cell is one header/value pair from a parsed row. Values are kept as raw
// strings; cleaning and typing happen downstream.
type Cell struct {
	Header string
	Value  string
}

// RawRow is an ordered bag of cells as produced by the row source.
//
// Headers are untrusted: they may appear in any casing, with spaces or
// underscores, and the same logical field can be present under several
// aliases in one row. Order matters only as a tiebreaker; alias-table
// priority decides which spelling wins.
type RawRow []Cell

// Row is a RawRow tagged with its 1-based position among the data rows of
// its original source file, so errors can point the user back at the exact
// offending line.
type Row struct {
	Index int
	Cells RawRow
}

// File is one uploaded file's worth of parsed rows. If the file could not be
// decoded at all, Err carries the reason and Rows is empty; the batch
// processor records a file-level error and moves on.
type File struct {
	Name string
	Rows []Row
	Err  error
}

// Record is a normalized, entity-specific payload ready for submission.
// Concrete types live in internal/schema (ParentRecord, DriverRecord, ...).
type Record interface {
	EntityType() EntityType
}

// Entity describes a record the create capability successfully persisted.
type Entity struct {
	ID          string     `json:"id"`
	Type        EntityType `json:"type"`
	DisplayName string     `json:"display_name"`
}

// RecordCreator is the external create capability the pipeline drives. Its
// failure reason is opaque to the pipeline beyond being rendered into an
// ImportError.
type RecordCreator interface {
	Create(ctx context.Context, rec Record) (Entity, error)
}

// CreatorFunc adapts a function to the RecordCreator interface.
type CreatorFunc func(ctx context.Context, rec Record) (Entity, error)

func (f CreatorFunc) Create(ctx context.Context, rec Record) (Entity, error) {
	return f(ctx, rec)
}

// ImportError is one recoverable failure, attributed to a row and, when
// known, a field. Row 0 means the error belongs to the file as a whole
// (e.g. the file could not be decoded).
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	return e.String()
}

// String renders the error the way the UI lists it: "Row N, field: message"
// when the field is known, "Row N: message" otherwise, and just the message
// for file-level errors.
func (e ImportError) String() string {
	switch {
	case e.Row > 0 && e.Field != "":
		return fmt.Sprintf("Row %d, %s: %s", e.Row, e.Field, e.Message)
	case e.Row > 0:
		return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
	default:
		return e.Message
	}
}

// BatchResult accumulates the outcome of one file.
//
// Invariant: Created + Skipped equals the number of rows processed for the
// file; no row is silently dropped.
type BatchResult struct {
	FileName string        `json:"file_name"`
	Created  int           `json:"created_count"`
	Skipped  int           `json:"skipped_count"`
	Errors   []ImportError `json:"errors,omitempty"`
	Entities []Entity      `json:"created_entities,omitempty"`
}

// Report is the aggregate over all files of one upload action.
type Report struct {
	EntityType   EntityType    `json:"entity_type"`
	TotalSuccess int           `json:"total_success"`
	TotalFailed  int           `json:"total_failed"`
	PerFile      []BatchResult `json:"per_file_results"`
	AllErrors    []string      `json:"all_errors,omitempty"`
}
