package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// CsvRow is one data row of a trade file, keyed by header.
//
// Header lookup ignores case and surrounding whitespace. Values are trimmed.
type CsvRow struct {
	headers []string
	fields  map[string]string
	line    int
}

// NewCsvRow pairs headers with values. Missing trailing values are treated as blank.
func NewCsvRow(line int, headers, values []string) CsvRow {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		fields[headerKey(h)] = v
	}
	return CsvRow{headers: slices.Clone(headers), fields: fields, line: line}
}

// RowOf builds a row from a header to value map, mainly for tests and programmatic sources.
func RowOf(line int, values map[string]string) CsvRow {
	headers := make([]string, 0, len(values))
	vals := make([]string, 0, len(values))
	for h, v := range values {
		headers = append(headers, h)
		vals = append(vals, v)
	}
	return NewCsvRow(line, headers, vals)
}

func headerKey(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Line is the 1-based line number in the source file.
func (r CsvRow) Line() int { return r.line }

// Headers returns the headers in file order.
func (r CsvRow) Headers() []string { return slices.Clone(r.headers) }

// Field returns the value for header, treating blank values as absent.
func (r CsvRow) Field(header string) (string, bool) {
	v, ok := r.fields[headerKey(header)]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Value returns the value for a required header.
func (r CsvRow) Value(header string) (string, error) {
	v, ok := r.Field(header)
	if !ok {
		return "", &ParseError{Line: r.line, Field: header, Err: ErrMissingField}
	}
	return v, nil
}

func (r CsvRow) String() string {
	return fmt.Sprintf("row at line %d", r.line)
}

// ReadRows reads a CSV file whose first record is the header.
//
// Lines starting with '#' are comments. Blank lines, including lines of empty
// fields, are skipped.
func ReadRows(r io.Reader) ([]CsvRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ReadRows: %w", ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadRows: header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows []CsvRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadRows: %w", err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, NewCsvRow(line, header, rec))
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
