package normalizer

import (
	"errors"
	"fmt"

	"carprice/internal/models"
)

// Validation errors.
var (
	ErrNilTable        = errors.New("raw table is nil")
	ErrMissingColumn   = errors.New("required column missing")
	ErrDuplicateColumn = errors.New("duplicate column in header")
	ErrRaggedRow       = errors.New("row has a different number of fields than the header")
)

// Validator checks the structure of a raw table before it is transformed.
type Validator struct {
	required []string
}

// NewValidator creates a validator requiring every raw dataset column.
func NewValidator() *Validator {
	return &Validator{
		required: models.RawColumns,
	}
}

// Validate returns an error if the table cannot be normalized as a whole.
// Individual malformed values are not checked here; they become missing.
func (v *Validator) Validate(table *models.RawTable) error {
	if table == nil {
		return ErrNilTable
	}

	seen := make(map[string]bool, len(table.Header))
	for _, name := range table.Header {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}

		seen[name] = true
	}

	for _, name := range v.required {
		if !seen[name] {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	for i, row := range table.Rows {
		if len(row) != len(table.Header) {
			return fmt.Errorf("%w at row %d", ErrRaggedRow, i+1)
		}
	}

	return nil
}

// ExtraColumns returns header columns that are neither required nor produced.
func (v *Validator) ExtraColumns(table *models.RawTable) []string {
	if table == nil {
		return nil
	}

	known := make(map[string]bool, len(v.required))
	for _, name := range v.required {
		known[name] = true
	}

	var extra []string

	for _, name := range table.Header {
		if !known[name] {
			extra = append(extra, name)
		}
	}

	return extra
}
