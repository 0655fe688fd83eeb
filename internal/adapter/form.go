package adapter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"carprice/internal/models"
)

// ErrInvalidField is matched by every *ValidationError.
var ErrInvalidField = errors.New("invalid request field")

// ValidationError names the request field whose value could not be coerced.
type ValidationError struct {
	Field string
	Value string
	Kind  models.Kind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s", e.Field, e.Value, e.Kind)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidField
}

// ParseForm builds CarFeatures from submitted form values. Blank values
// become nil before type coercion; unknown keys are ignored. The first
// value that fails coercion is reported as a *ValidationError.
func ParseForm(values url.Values) (CarFeatures, error) {
	var f CarFeatures

	for _, fd := range fields {
		raw := values.Get(fd.name)

		value, ok := NormalizeBlank(raw)
		if !ok {
			continue
		}

		if err := assign(fd.ref(&f), value); err != nil {
			return CarFeatures{}, &ValidationError{Field: fd.name, Value: raw, Kind: fd.kind}
		}
	}

	return f, nil
}

func assign(ref any, value string) error {
	switch p := ref.(type) {
	case **string:
		*p = &value
	case **int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}

		*p = &v
	case **float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.ErrSyntax
		}

		*p = &v
	}

	return nil
}
