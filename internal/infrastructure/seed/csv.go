package seed

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// reader wraps encoding/csv with BOM stripping, UTF-8 validation and
// header-indexed field access
type reader struct {
	csv        *csv.Reader
	headerMap  map[string]int
	currentRow int
}

func newReader(r io.Reader) (*reader, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := validateUTF8(buf); err != nil {
		return nil, err
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rd := &reader{csv: cr, headerMap: make(map[string]int)}
	if err := rd.parseHeader(); err != nil {
		return nil, err
	}
	return rd, nil
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

func (r *reader) parseHeader() error {
	record, err := r.csv.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range record {
		r.headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}
	r.currentRow = 1
	return nil
}

// hasColumn reports whether the header row named the column
func (r *reader) hasColumn(name string) bool {
	_, ok := r.headerMap[name]
	return ok
}

// next reads the next data row. It returns io.EOF when the input is
// exhausted.
func (r *reader) next() (row, error) {
	record, err := r.csv.Read()
	if err != nil {
		return row{}, err
	}
	r.currentRow++
	return row{number: r.currentRow, fields: record, headerMap: r.headerMap}, nil
}

// row is a single data row with header-named access
type row struct {
	number    int
	fields    []string
	headerMap map[string]int
}

// get returns the trimmed value of the named column, or "" when the column
// is absent from the header or the row is short
func (r row) get(name string) string {
	idx, ok := r.headerMap[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}
