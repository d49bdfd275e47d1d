package server

import "github.com/rpgo/corpus-projector/internal/domain"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CalculationMetadata describes one projection request.
type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	BaseYear               int    `json:"base_year"`
}

// ProjectionResponse is returned by POST /v1/projection.
type ProjectionResponse struct {
	CalculationMetadata CalculationMetadata    `json:"calculation_metadata"`
	Projection          *domain.FullProjection `json:"projection"`
}

// ScenarioResponse is returned by POST /v1/scenario/{kind}.
type ScenarioResponse struct {
	CalculationMetadata CalculationMetadata    `json:"calculation_metadata"`
	Scenario            *domain.ScenarioResult `json:"scenario"`
}
