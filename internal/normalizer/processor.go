// Package normalizer turns the raw car listings dataset into the cleaned, model-ready dataset.
package normalizer

import (
	"fmt"

	"carprice/internal/models"
)

// Processor handles validation and transformation of a whole raw table.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// Result is the outcome of a normalization run.
type Result struct {
	Records []models.CarRecord
	// IgnoredColumns are raw columns that are not part of the normalized schema.
	IgnoredColumns []string
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Process normalizes every row of the table, preserving row order.
func (p *Processor) Process(table *models.RawTable) (*Result, error) {
	// 1. Structural validation is fatal for the whole batch
	if err := p.validator.Validate(table); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Row transformation never fails; bad values become missing
	records := make([]models.CarRecord, 0, table.Len())
	for i := range table.Rows {
		records = append(records, p.transformer.Transform(table.Record(i)))
	}

	return &Result{
		Records:        records,
		IgnoredColumns: p.validator.ExtraColumns(table),
	}, nil
}
