package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sproutfi/stash/internal/adapter/http/dto"
	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/usecase"
)

// PlanService defines the behavior needed by PlanHandler.
type PlanService interface {
	CreatePlan(ctx context.Context, input usecase.CreatePlanInput) (*domain.SavingsPlan, error)
	GetPlan(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error)
	ListPlans(ctx context.Context, input usecase.ListPlansInput) ([]*domain.SavingsPlan, error)
	GetProgress(ctx context.Context, planID, userID string) (*domain.Progress, error)
	Contribute(ctx context.Context, input usecase.ContributeInput) (*domain.SavingsPlan, error)
	Pause(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error)
	Resume(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error)
	Cancel(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error)
}

// PlanHandler handles savings-plan HTTP requests.
type PlanHandler struct {
	planUC PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planUC PlanService) *PlanHandler {
	return &PlanHandler{planUC: planUC}
}

// Create creates a new savings plan.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	plan, err := h.planUC.CreatePlan(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create plan", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PlanFromDomain(plan))
}

// Get retrieves a plan by ID.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	plan, err := h.planUC.GetPlan(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get plan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlanFromDomain(plan))
}

// List lists the user's plans.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	plans, err := h.planUC.ListPlans(r.Context(), usecase.ListPlansInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list plans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPlansResponse{
		Plans: dto.PlansFromDomain(plans),
		Total: int64(len(plans)),
	})
}

// Progress returns the plan's progress summary.
func (h *PlanHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	progress, err := h.planUC.GetProgress(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get progress", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProgressFromDomain(progress))
}

// Contribute records a contribution to the plan.
func (h *PlanHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	var req dto.ContributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	plan, err := h.planUC.Contribute(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to contribute", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlanFromDomain(plan))
}

// Pause pauses an active plan.
func (h *PlanHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.planUC.Pause, "failed to pause plan")
}

// Resume resumes a paused plan.
func (h *PlanHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.planUC.Resume, "failed to resume plan")
}

// Cancel cancels a plan.
func (h *PlanHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.planUC.Cancel, "failed to cancel plan")
}

func (h *PlanHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error),
	message string,
) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	plan, err := fn(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), message, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlanFromDomain(plan))
}
