// Package importer implements the bulk record import pipeline used by the
// parents, drivers, vehicles and staff screens.
//
// The pipeline starts at "one parsed row" (an ordered bag of header/value
// pairs produced by a row source) and ends at "one created entity or one
// structured error". It never aborts a batch because one row or one file is
// bad; every failure is recorded as data and processing continues.
//
// The stages, leaves first:
//
//   - field resolution: locate a canonical field under any of its known
//     header spellings (AliasTable.Resolve)
//   - cleaning: strip export artifacts from cell values (CleanValue)
//   - synthesis: canonicalize phone numbers and emails, generating
//     structurally valid placeholders when the source value is unusable
//     (Synthesizer)
//   - validation: per-entity mandatory-field and business rules, emitting
//     one ImportError per violation
//   - batch processing: files then rows, strictly sequential, invoking the
//     RecordCreator capability and accumulating counts and errors into a
//     Report
//
// Entity-specific behavior (alias tables, mandatory fields, payload
// assembly, validation rules) is injected through an EntitySpec registered
// per entity type; the engine itself is generic.
package importer
