package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"carprice/internal/adapter"
	"carprice/internal/api"
	"carprice/internal/config"
	"carprice/internal/logger"
	"carprice/internal/model"
)

func openFixtureModel(t *testing.T) model.Backend {
	t.Helper()

	backend, err := model.Open(config.ModelConfig{
		Backend:    config.BackendLinear,
		Artifact:   fixturePath("model.json5"),
		TimeoutSec: 1,
	})
	if err != nil {
		t.Fatalf("model.Open failed: %v", err)
	}

	return backend
}

func TestPredictionFlow_AllBlankRequest(t *testing.T) {
	a := adapter.New(openFixtureModel(t))

	form := url.Values{}
	for _, name := range adapter.FieldNames() {
		form.Set(name, "")
	}

	features, err := adapter.ParseForm(form)
	if err != nil {
		t.Fatalf("ParseForm rejected an all-blank request: %v", err)
	}

	row := adapter.ToFeatureRow(features)
	if len(row) != 17 {
		t.Fatalf("Feature row has %d columns, want 17", len(row))
	}

	for column, value := range row {
		if value != nil {
			t.Errorf("Column %s = %v, want missing", column, value)
		}
	}

	price, err := a.Predict(context.Background(), row)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	// Intercept plus imputed numerics only
	if price != 14850 {
		t.Errorf("Predict = %v, want 14850", price)
	}
}

func TestPredictionFlow_HTTP(t *testing.T) {
	srv, err := api.New(config.Default().Server, openFixtureModel(t), prometheus.NewRegistry(),
		logger.NewLoggerWithWriter("error", "text", io.Discard))
	if err != nil {
		t.Fatalf("api.New failed: %v", err)
	}

	ts := httptest.NewServer(srv)
	defer ts.Close()

	form := url.Values{
		"brand":        {"Honda"},
		"model":        {"Amaze 1.2 VX i-VTEC"},
		"year":         {"2017"},
		"mileage":      {"87150"},
		"fuel_type":    {"Petrol"},
		"transmission": {"Manual"},
		"max_power_hp": {"88.20669"},
		"color":        {"   "},
	}

	resp, err := http.Post(ts.URL+"/predict", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("POST /predict failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Status = %d, body %s", resp.StatusCode, body)
	}

	var out api.PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// -1500000 + 750*2017 - 0.02*87150 + 45*88.20669
	if out.PredictedPrice != 14976.3 {
		t.Errorf("predicted_price = %v, want 14976.3", out.PredictedPrice)
	}
}

func TestPredictionFlow_HTTPValidation(t *testing.T) {
	srv, err := api.New(config.Default().Server, openFixtureModel(t), prometheus.NewRegistry(),
		logger.NewLoggerWithWriter("error", "text", io.Discard))
	if err != nil {
		t.Fatalf("api.New failed: %v", err)
	}

	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.PostForm(ts.URL+"/predict", url.Values{"mileage": {"a lot"}})
	if err != nil {
		t.Fatalf("POST /predict failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Status = %d, want 422", resp.StatusCode)
	}

	var out api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if out.Field != "mileage" {
		t.Errorf("Field = %q, want mileage", out.Field)
	}
}
