// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealkit/v1/internal/domain/plan"
	"github.com/mealkit/v1/internal/ports/inbound"
	"github.com/mealkit/v1/pkg/errors"
)

const unavailableMessage = "Unable to build a meal plan right now. Try again shortly."

// PlanHandlers handles meal plan REST API requests
type PlanHandlers struct {
	planService inbound.PlanService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewPlanHandlers creates a new plan handlers instance
func NewPlanHandlers(planService inbound.PlanService, logger *zap.Logger) *PlanHandlers {
	return &PlanHandlers{
		planService: planService,
		validate:    validator.New(),
		logger:      logger.Named("plan-handlers"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ListPlans handles GET /api/v1/plans
func (h *PlanHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.planService.ListPlans(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    summaries,
	})
}

// GetPlan handles GET /api/v1/plans/{id}
func (h *PlanHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	doc, err := h.planService.GetPlan(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    doc,
	})
}

// GeneratePlan handles POST /api/v1/plans/generate
func (h *PlanHandlers) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req plan.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Validation failed",
			Message: validationMessage(err),
		})
		return
	}

	doc, err := h.planService.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if doc == nil {
		h.writeJSON(w, http.StatusBadGateway, APIResponse{
			Success: false,
			Error:   unavailableMessage,
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/plans/%s", doc.ID))
	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    doc,
	})
}

// UpdatePlan handles PUT /api/v1/plans/{id}
func (h *PlanHandlers) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var patch inbound.UpdatePlanCommand
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.planService.UpdatePlan(r.Context(), id, patch); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePlan handles DELETE /api/v1/plans/{id}
func (h *PlanHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /api/v1/health
func (h *PlanHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
		Message: "Service is healthy",
	})
}

// parseID extracts and validates the plan id path parameter
func (h *PlanHandlers) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Invalid meal plan id",
		})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps application errors onto their HTTP status
func (h *PlanHandlers) writeError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		h.writeJSON(w, appErr.StatusCode(), APIResponse{
			Success: false,
			Error:   appErr.Message,
			Message: appErr.Details,
		})
		return
	}

	h.logger.Error("Unhandled error", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   "An unexpected error occurred",
	})
}

// writeJSON writes a JSON response with the given status code
func (h *PlanHandlers) writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// validationMessage flattens validator errors into a readable line
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return msg
}
