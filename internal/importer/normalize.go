package importer

// normalize.go composes field resolution, cleaning, synthesis and
// validation into one row -> record function.

import (
	"errors"
	"fmt"
)

// AssembleFunc builds an entity-specific Record from resolved canonical
// fields, using the batch Synthesizer for phone/email synthesis and
// defaulting. It runs only after the mandatory-field check has passed.
type AssembleFunc func(fields map[string]string, syn *Synthesizer) (Record, error)

// ValidateFunc enforces business rules on an assembled record. A nil return
// means the record passed; otherwise the error is unpacked into one
// ImportError per violated rule.
type ValidateFunc func(rec Record) error

// EntitySpec is everything the generic engine needs to import one entity
// type: which header spellings map to which canonical fields, which fields
// are mandatory and non-synthesizable, how to assemble the payload, and how
// to validate it.
type EntitySpec struct {
	Type      EntityType
	Label     string // display name for logs and reports
	Aliases   AliasTable
	Mandatory []string
	Assemble  AssembleFunc
	Validate  ValidateFunc
}

// Pipeline is the row normalizer for one batch: it owns the Synthesizer so
// synthesized values stay unique across the whole upload.
type Pipeline struct {
	spec EntitySpec
	syn  *Synthesizer
}

// NewPipeline creates a row normalizer for spec. Pass nil to use the system
// suffix source.
func NewPipeline(spec EntitySpec, src SuffixSource) *Pipeline {
	return &Pipeline{
		spec: spec,
		syn:  NewSynthesizer(src),
	}
}

// Synthesizer exposes the batch synthesizer for assembly functions that are
// exercised outside a full pipeline run (tests, dry-run tooling).
func (p *Pipeline) Synthesizer() *Synthesizer { return p.syn }

// NormalizeRow converts one raw row into a normalized record, or into the
// list of reasons it cannot be one. It performs no I/O; the only ambient
// inputs are the clock and random source behind the Synthesizer.
func (p *Pipeline) NormalizeRow(row Row) (Record, []ImportError) {
	fields := p.spec.Aliases.ResolveAll(row.Cells)

	// Mandatory fields are never synthesized: a record with no name or no
	// contact number at all is not a usable entity regardless of defaults.
	var errs []ImportError
	for _, field := range p.spec.Mandatory {
		if fields[field] == "" {
			errs = append(errs, ImportError{
				Row:     row.Index,
				Field:   field,
				Message: "missing required field: no recognized column has a value",
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	rec, err := p.spec.Assemble(fields, p.syn)
	if err != nil {
		var ie ImportError
		if errors.As(err, &ie) {
			ie.Row = row.Index
			return nil, []ImportError{ie}
		}
		return nil, []ImportError{{
			Row:     row.Index,
			Message: err.Error(),
		}}
	}

	if p.spec.Validate != nil {
		if err := p.spec.Validate(rec); err != nil {
			return nil, ValidationErrors(row.Index, err)
		}
	}

	return rec, nil
}

// FieldError builds an assembly error attributed to a single canonical
// field. The row index is filled in by the pipeline.
func FieldError(field, format string, args ...any) ImportError {
	return ImportError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
