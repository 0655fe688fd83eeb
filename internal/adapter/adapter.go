package adapter

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrPredictionFailed wraps every error coming back from the model.
var ErrPredictionFailed = errors.New("prediction failed")

// Predictor is a trained model that maps one feature row to a price in USD.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, row FeatureRow) (float64, error)
}

// Adapter connects validated requests to a Predictor.
type Adapter struct {
	predictor Predictor
}

// New creates an adapter around a loaded model.
func New(p Predictor) *Adapter {
	return &Adapter{predictor: p}
}

// Predict runs the model on row and rounds the result to 2 decimals,
// half away from zero.
func (a *Adapter) Predict(ctx context.Context, row FeatureRow) (float64, error) {
	v, err := a.predictor.Predict(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: model returned %v", ErrPredictionFailed, v)
	}

	return Round2(v), nil
}

// PredictFeatures converts f to a feature row and predicts its price.
func (a *Adapter) PredictFeatures(ctx context.Context, f CarFeatures) (float64, error) {
	return a.Predict(ctx, ToFeatureRow(f))
}

// Round2 rounds v to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
