// Package linear implements a linear regression price model loaded from a JSON5 artifact.
package linear

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/titanous/json5"

	"carprice/internal/adapter"
	"carprice/internal/models"
)

// Artifact errors.
var (
	ErrUnknownColumn   = errors.New("artifact references a column that is not a model feature")
	ErrKindMismatch    = errors.New("artifact term does not match the column type")
	ErrUnexpectedValue = errors.New("feature value has an unexpected type")
)

// Artifact is the on-disk form of a trained model.
type Artifact struct {
	Name        string                     `json:"name"`
	Intercept   float64                    `json:"intercept"`
	Numeric     map[string]NumericTerm     `json:"numeric"`
	Categorical map[string]CategoricalTerm `json:"categorical"`
}

// NumericTerm is the coefficient of a numeric column. Impute replaces a
// missing value.
type NumericTerm struct {
	Weight float64 `json:"weight"`
	Impute float64 `json:"impute"`
}

// CategoricalTerm holds one-hot weights for a text column. Categories not
// listed contribute nothing; Missing is used when the value is absent.
type CategoricalTerm struct {
	Weights map[string]float64 `json:"weights"`
	Missing float64            `json:"missing"`
}

// Model is an immutable linear model, safe for concurrent use.
type Model struct {
	artifact Artifact
}

// Load reads and validates an artifact file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates an artifact.
func Parse(data []byte) (*Model, error) {
	var a Artifact
	if err := json5.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return &Model{artifact: a}, nil
}

// Validate checks every term against the feature schema.
func (a *Artifact) Validate() error {
	for column := range a.Numeric {
		if !models.IsFeatureColumn(column) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		}

		if models.ColumnKinds[column] == models.KindText {
			return fmt.Errorf("%w: %q is text, not numeric", ErrKindMismatch, column)
		}
	}

	for column := range a.Categorical {
		if !models.IsFeatureColumn(column) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		}

		if models.ColumnKinds[column] != models.KindText {
			return fmt.Errorf("%w: %q is numeric, not text", ErrKindMismatch, column)
		}
	}

	return nil
}

// Name returns the artifact name, or "linear" when it has none.
func (m *Model) Name() string {
	if m.artifact.Name == "" {
		return "linear"
	}

	return m.artifact.Name
}

// Predict returns intercept + sum of weighted numeric values + category weights.
func (m *Model) Predict(ctx context.Context, row adapter.FeatureRow) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	total := m.artifact.Intercept

	// Summed in schema order so results do not depend on map iteration.
	for _, column := range models.FeatureColumns {
		value := row[column]

		if term, ok := m.artifact.Numeric[column]; ok {
			x, err := numeric(column, value, term.Impute)
			if err != nil {
				return 0, err
			}

			total += term.Weight * x
		}

		if term, ok := m.artifact.Categorical[column]; ok {
			w, err := category(column, value, term)
			if err != nil {
				return 0, err
			}

			total += w
		}
	}

	return total, nil
}

func numeric(column string, value any, impute float64) (float64, error) {
	switch v := value.(type) {
	case nil:
		return impute, nil
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %s is %T", ErrUnexpectedValue, column, value)
	}
}

func category(column string, value any, term CategoricalTerm) (float64, error) {
	switch v := value.(type) {
	case nil:
		return term.Missing, nil
	case string:
		return term.Weights[v], nil
	default:
		return 0, fmt.Errorf("%w: %s is %T", ErrUnexpectedValue, column, value)
	}
}
