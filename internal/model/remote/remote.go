// Package remote calls an external model-serving endpoint for price predictions.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"carprice/internal/adapter"
	"carprice/pkg/utils"
)

// Remote backend errors.
var (
	ErrUnexpectedStatus  = errors.New("model server returned an error status")
	ErrMalformedResponse = errors.New("model server returned a malformed response")
)

type predictRequest struct {
	Rows []adapter.FeatureRow `json:"rows"`
}

type predictResponse struct {
	Predictions []*float64 `json:"predictions"`
}

// Client posts feature rows to url and reads back one prediction per row.
type Client struct {
	http *resty.Client
	url  string
}

// New creates a client with a per-request timeout.
func New(url string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetHeaders(utils.DefaultHeaders(nil))
	client.SetTimeout(timeout)

	return &Client{http: client, url: url}
}

// Name identifies the backend in health checks.
func (c *Client) Name() string {
	return "remote"
}

// Predict sends {"rows":[row]} and expects {"predictions":[price]}.
func (c *Client) Predict(ctx context.Context, row adapter.FeatureRow) (float64, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(predictRequest{Rows: []adapter.FeatureRow{row}}).
		Post(c.url)
	if err != nil {
		return 0, fmt.Errorf("failed to call model server: %w", err)
	}

	if !res.IsSuccess() {
		return 0, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, res.StatusCode(), utils.TruncateString(res.String(), 200))
	}

	var out predictResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(out.Predictions) != 1 {
		return 0, fmt.Errorf("%w: got %d predictions for 1 row", ErrMalformedResponse, len(out.Predictions))
	}

	if out.Predictions[0] == nil {
		return 0, fmt.Errorf("%w: prediction is null", ErrMalformedResponse)
	}

	return *out.Predictions[0], nil
}
