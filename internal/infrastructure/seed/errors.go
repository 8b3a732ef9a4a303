package seed

import (
	"errors"
	"fmt"
	"strings"
)

// Row error codes surfaced in import summaries
const (
	ErrCodeMalformedRow    = "MALFORMED_ROW"
	ErrCodeRequiredField   = "REQUIRED_FIELD"
	ErrCodeInvalidValue    = "INVALID_VALUE"
	ErrCodeDuplicateSlug   = "DUPLICATE_SLUG"
	ErrCodeUnknownCategory = "UNKNOWN_CATEGORY"
)

var (
	// ErrEmptyFile is returned when the CSV input is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the input is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV input has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// RowError describes a problem with one CSV data row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection accumulates row errors up to a cap so a pathological file
// cannot produce an unbounded report
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates an ErrorCollection that keeps at most maxErrors
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0),
		maxErrors: maxErrors,
	}
}

// Add records an error. Errors beyond the cap are counted but dropped.
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// Errors returns the retained errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Total returns the number of errors seen, including dropped ones
func (ec *ErrorCollection) Total() int {
	return ec.totalCount
}

// HasErrors reports whether any error was recorded
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// Summary renders a short human-readable report
func (ec *ErrorCollection) Summary() string {
	if ec.totalCount == 0 {
		return "no errors"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d error(s)", ec.totalCount)
	if ec.totalCount > len(ec.errors) {
		fmt.Fprintf(&b, " (%d shown)", len(ec.errors))
	}
	for _, e := range ec.errors {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}
