package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carprice/internal/adapter"
	"carprice/internal/models"
	"carprice/pkg/utils"
)

const endpoint = "http://models.test/v1/car-price:predict"

func newMockedClient(t *testing.T) *Client {
	t.Helper()

	c := New(endpoint, 2*time.Second)
	httpmock.ActivateNonDefault(c.http.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	return c
}

func TestPredict(t *testing.T) {
	c := newMockedClient(t)

	var received predictRequest
	httpmock.RegisterResponder(http.MethodPost, endpoint, func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(body, &received); err != nil {
			return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
		}

		assert.Equal(t, utils.UserAgent, req.Header.Get("User-Agent"))

		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"predictions": []float64{6213.4567}})
	})

	brand := "Honda"
	row := adapter.ToFeatureRow(adapter.CarFeatures{Brand: &brand})

	got, err := c.Predict(context.Background(), row)
	require.NoError(t, err)
	assert.InDelta(t, 6213.4567, got, 1e-9)

	require.Len(t, received.Rows, 1)
	assert.Len(t, received.Rows[0], len(models.FeatureColumns))
	assert.Equal(t, "Honda", received.Rows[0][models.ColBrand])
	assert.Contains(t, received.Rows[0], models.ColYear)
	assert.Nil(t, received.Rows[0][models.ColYear])
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestPredict_Errors(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		wantErr   error
	}{
		{
			name:      "Server error",
			responder: httpmock.NewStringResponder(http.StatusInternalServerError, "model not loaded"),
			wantErr:   ErrUnexpectedStatus,
		},
		{
			name:      "Not JSON",
			responder: httpmock.NewStringResponder(http.StatusOK, "<html>"),
			wantErr:   ErrMalformedResponse,
		},
		{
			name:      "Wrong prediction count",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"predictions":[1,2]}`),
			wantErr:   ErrMalformedResponse,
		},
		{
			name:      "Null prediction",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"predictions":[null]}`),
			wantErr:   ErrMalformedResponse,
		},
		{
			name:      "Missing predictions",
			responder: httpmock.NewStringResponder(http.StatusOK, `{}`),
			wantErr:   ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMockedClient(t)
			httpmock.RegisterResponder(http.MethodPost, endpoint, tt.responder)

			_, err := c.Predict(context.Background(), adapter.FeatureRow{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPredict_WrappedByAdapter(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, endpoint, httpmock.NewStringResponder(http.StatusBadGateway, "upstream down"))

	_, err := adapter.New(c).Predict(context.Background(), adapter.FeatureRow{})
	assert.ErrorIs(t, err, adapter.ErrPredictionFailed)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestPredict_TransportError(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterNoResponder(httpmock.ConnectionFailure)

	_, err := c.Predict(context.Background(), adapter.FeatureRow{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call model server")
}

func TestName(t *testing.T) {
	assert.Equal(t, "remote", New(endpoint, time.Second).Name())
}
