package server

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/corpus-projector/internal/calculation"
	"github.com/rpgo/corpus-projector/internal/domain"
)

const scenarioPrefix = "/v1/scenario/"

// Handler routes requests to the projection endpoints.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		s.handleHealth(ctx)
	case path == "/v1/projection":
		s.handleProjection(ctx)
	case strings.HasPrefix(path, scenarioPrefix):
		s.handleScenario(ctx, strings.TrimPrefix(path, scenarioPrefix))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	level := slog.LevelInfo
	if ctx.Response.StatusCode() >= fasthttp.StatusInternalServerError {
		level = slog.LevelError
	} else if ctx.Response.StatusCode() >= fasthttp.StatusBadRequest {
		level = slog.LevelWarn
	}
	s.logger.Log(s.baseCtx, level, "request",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	plan, ok := s.decodePlan(ctx)
	if !ok {
		return
	}

	meta, started := s.newMetadata()
	result, err := s.engine.CalculateFinances(s.baseCtx, plan)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	s.complete(&meta, started)
	writeJSON(ctx, fasthttp.StatusOK, ProjectionResponse{CalculationMetadata: meta, Projection: result})
}

func (s *Server) handleScenario(ctx *fasthttp.RequestCtx, rawKind string) {
	kind, err := domain.ParseScenarioKind(rawKind)
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	plan, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	ignore := ctx.QueryArgs().GetBool("ignore_expenses")

	meta, started := s.newMetadata()
	result, err := s.engine.CalculateScenario(plan, kind, ignore)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	s.complete(&meta, started)
	writeJSON(ctx, fasthttp.StatusOK, ScenarioResponse{CalculationMetadata: meta, Scenario: result})
}

// decodePlan reads, normalizes and validates the plan in the request body.
// It writes the error reply itself and reports whether to continue.
func (s *Server) decodePlan(ctx *fasthttp.RequestCtx) (*domain.Plan, bool) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return nil, false
	}
	body := ctx.PostBody()
	if s.maxBody > 0 && len(body) > s.maxBody {
		writeError(ctx, fasthttp.StatusRequestEntityTooLarge, "Request body too large")
		return nil, false
	}

	var plan domain.Plan
	if err := json.Unmarshal(body, &plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	s.parser.Normalize(&plan)
	if err := s.parser.ValidatePlan(&plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid plan: "+err.Error())
		return nil, false
	}
	return &plan, true
}

func (s *Server) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	var invalid *calculation.InvalidExpenseError
	if errors.As(err, &invalid) {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Error("projection failed", "error", err)
	writeError(ctx, fasthttp.StatusInternalServerError, "Projection failed")
}

func (s *Server) newMetadata() (CalculationMetadata, time.Time) {
	started := s.now().UTC()
	return CalculationMetadata{
		CalculationID:        uuid.NewString(),
		CalculationStartedAt: started.Format(time.RFC3339Nano),
		BaseYear:             s.engine.ProjectionYear(),
	}, started
}

func (s *Server) complete(meta *CalculationMetadata, started time.Time) {
	done := s.now().UTC()
	meta.CalculationCompletedAt = done.Format(time.RFC3339Nano)
	meta.CalculationDurationMs = done.Sub(started).Milliseconds()
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
