package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"carprice/internal/adapter"
)

// PredictionResponse is the body of a successful prediction.
type PredictionResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// HealthResponse reports liveness and the loaded model.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	Field         string `json:"field,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

func newCorrelationID() string {
	return uuid.NewString()
}

func (s *Server) handlePredict(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return s.handleError(c, err, "", "Could not read form body", http.StatusBadRequest)
	}

	features, err := adapter.ParseForm(form)
	if err != nil {
		var verr *adapter.ValidationError
		if errors.As(err, &verr) {
			s.metrics.RecordValidationError(verr.Field)
			return s.handleError(c, err, verr.Field, "Invalid request field", http.StatusUnprocessableEntity)
		}

		return s.handleError(c, err, "", "Invalid request", http.StatusUnprocessableEntity)
	}

	start := time.Now()
	price, err := s.adapter.PredictFeatures(c.Request().Context(), features)
	s.metrics.RecordPrediction(s.model, time.Since(start).Seconds(), err)

	if err != nil {
		return s.handleError(c, err, "", "Prediction failed", http.StatusBadGateway)
	}

	return c.JSON(http.StatusOK, PredictionResponse{PredictedPrice: price})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Model: s.model})
}

// handleError logs err and writes an ErrorResponse. The correlation id is the
// request id when one was assigned.
func (s *Server) handleError(c echo.Context, err error, field, message string, code int) error {
	correlationID := c.Response().Header().Get(echo.HeaderXRequestID)
	if correlationID == "" {
		correlationID = newCorrelationID()
	}

	resp := ErrorResponse{
		Error:         err.Error(),
		Message:       message,
		Code:          code,
		Field:         field,
		CorrelationID: correlationID,
	}

	log := s.logger.With(
		"correlation_id", correlationID,
		"path", c.Request().URL.Path,
		"code", code,
		"error", err,
	)

	if code >= http.StatusInternalServerError {
		log.Error(message)
	} else {
		log.Warn(message)
	}

	return c.JSON(code, resp)
}
