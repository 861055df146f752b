// Package rowsource decodes uploaded CSV bytes into the ordered
// header/value rows the import pipeline consumes.
//
// It is the "parsing collaborator" on the pipeline's input boundary: the
// pipeline itself never sees bytes, only rows. Decoding is deliberately
// forgiving about real-world exports: UTF-8 is sanitized, a BOM is
// skipped, quoting is lazy, ragged column counts are tolerated, and the
// header row is searched for rather than assumed to be line one.
package rowsource

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shulebus/shulebus/internal/importer"
)

// MaxHeaderSearchRows is how many leading rows are scanned for a plausible
// header before the file is rejected. Export tools often emit titles or
// blank lines above the real header.
var MaxHeaderSearchRows = 20

// ErrEmptyFile is returned for files with no data rows.
var ErrEmptyFile = errors.New("empty file: no data rows found")

// ErrNoHeader is returned when no plausible header row is found.
var ErrNoHeader = errors.New("no header row found")

// DecodeFile reads at most maxBytes from r and parses it into an
// importer.File. Decode failures are folded into File.Err rather than
// returned, so one corrupt upload never aborts a batch: the batch processor
// records the file-level error and moves on.
func DecodeFile(name string, r io.Reader, maxBytes int64) importer.File {
	file := importer.File{Name: name}

	limited := io.LimitReader(r, maxBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		file.Err = fmt.Errorf("read file: %w", err)
		return file
	}
	if int64(len(data)) > maxBytes {
		file.Err = fmt.Errorf("file exceeds %d byte limit", maxBytes)
		return file
	}

	rows, err := Decode(data)
	if err != nil {
		file.Err = err
		return file
	}

	file.Rows = rows
	return file
}

// Decode parses CSV bytes into pipeline rows. The returned rows carry
// 1-based indexes matching their position among the data rows of the
// original file; fully empty rows keep their place in the numbering but are
// not emitted.
func Decode(data []byte) ([]importer.Row, error) {
	data = sanitizeUTF8(skipBOM(data))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headerIdx := findHeaderRow(records)
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	header := records[headerIdx]
	dataRows := records[headerIdx+1:]

	var rows []importer.Row
	index := 0
	for _, record := range dataRows {
		index++
		if isEmptyRow(record) {
			continue
		}

		cells := make(importer.RawRow, 0, len(record))
		for i, value := range record {
			if i >= len(header) {
				break
			}
			cells = append(cells, importer.Cell{
				Header: header[i],
				Value:  value,
			})
		}
		rows = append(rows, importer.Row{Index: index, Cells: cells})
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// findHeaderRow returns the index of the first plausible header row. Rows
// with at least two non-empty cells win; if the search window holds none,
// the first row with a single value is taken so single-column files still
// work. A lone title cell above a multi-column header is the common case
// the first pass skips.
func findHeaderRow(records [][]string) int {
	limit := len(records)
	if limit > MaxHeaderSearchRows {
		limit = MaxHeaderSearchRows
	}

	for i := 0; i < limit; i++ {
		if countNonEmpty(records[i]) >= 2 {
			return i
		}
	}
	for i := 0; i < limit; i++ {
		if countNonEmpty(records[i]) == 1 {
			return i
		}
	}
	return -1
}

func countNonEmpty(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// skipBOM removes a UTF-8 byte order mark, an artifact of Windows export
// tools that otherwise corrupts the first header cell.
func skipBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the Unicode
// replacement character so the CSV reader never chokes on mis-encoded
// exports.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
