package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/adapter/http/dto"
	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/usecase"
)

type planServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreatePlanInput) (*domain.SavingsPlan, error)
	getFn        func(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error)
	listFn       func(ctx context.Context, input usecase.ListPlansInput) ([]*domain.SavingsPlan, error)
	progressFn   func(ctx context.Context, planID, userID string) (*domain.Progress, error)
	contributeFn func(ctx context.Context, input usecase.ContributeInput) (*domain.SavingsPlan, error)
	transitionFn func(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error)
}

func (s *planServiceStub) CreatePlan(ctx context.Context, input usecase.CreatePlanInput) (*domain.SavingsPlan, error) {
	return s.createFn(ctx, input)
}

func (s *planServiceStub) GetPlan(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return s.getFn(ctx, planID, userID)
}

func (s *planServiceStub) ListPlans(ctx context.Context, input usecase.ListPlansInput) ([]*domain.SavingsPlan, error) {
	return s.listFn(ctx, input)
}

func (s *planServiceStub) GetProgress(ctx context.Context, planID, userID string) (*domain.Progress, error) {
	return s.progressFn(ctx, planID, userID)
}

func (s *planServiceStub) Contribute(ctx context.Context, input usecase.ContributeInput) (*domain.SavingsPlan, error) {
	return s.contributeFn(ctx, input)
}

func (s *planServiceStub) Pause(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return s.transitionFn(ctx, planID, userID)
}

func (s *planServiceStub) Resume(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return s.transitionFn(ctx, planID, userID)
}

func (s *planServiceStub) Cancel(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return s.transitionFn(ctx, planID, userID)
}

func testPlan() *domain.SavingsPlan {
	return &domain.SavingsPlan{
		ID:             "plan-1",
		UserID:         "user-1",
		PlanName:       "Rent",
		DailyAmount:    domain.NewMoney(50000, domain.NGN),
		CurrentAmount:  domain.NewMoney(250000, domain.NGN),
		MinimumBalance: domain.NewMoney(0, domain.NGN),
		Status:         domain.PlanStatusActive,
		Version:        1,
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestPlanHandler_Create_Success(t *testing.T) {
	var captured usecase.CreatePlanInput
	handler := NewPlanHandler(&planServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePlanInput) (*domain.SavingsPlan, error) {
			captured = input
			return testPlan(), nil
		},
	})

	body, _ := json.Marshal(dto.CreatePlanRequest{
		PlanName:          "Rent",
		Currency:          "NGN",
		DailyAmount:       decimal.RequireFromString("500"),
		CycleDurationDays: 30,
	})

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" || captured.DailyAmount.Amount != 50000 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "plan-1" {
		t.Fatalf("expected plan ID plan-1, got %s", resp.ID)
	}
}

func TestPlanHandler_Create_MissingUser(t *testing.T) {
	handler := NewPlanHandler(&planServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePlanInput) (*domain.SavingsPlan, error) {
			t.Fatal("CreatePlan should not be called without a user")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPlanHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewPlanHandler(&planServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePlanInput) (*domain.SavingsPlan, error) {
			t.Fatal("CreatePlan should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewBufferString("{invalid json"))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPlanHandler_Get_NotOwned(t *testing.T) {
	handler := NewPlanHandler(&planServiceStub{
		getFn: func(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
			return nil, domain.ErrPlanNotOwned
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/plans/plan-1", nil)
	req.Header.Set("X-User-ID", "user-2")
	req = setChiURLParam(req, "id", "plan-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPlanHandler_List(t *testing.T) {
	handler := NewPlanHandler(&planServiceStub{
		listFn: func(ctx context.Context, input usecase.ListPlansInput) ([]*domain.SavingsPlan, error) {
			if input.UserID != "user-1" || input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected user-1 limit=5 offset=2, got %+v", input)
			}
			return []*domain.SavingsPlan{testPlan()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/plans?limit=5&offset=2", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListPlansResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Plans) != 1 || resp.Total != 1 {
		t.Fatalf("expected one plan, got %+v", resp)
	}
}

func TestPlanHandler_Contribute(t *testing.T) {
	var captured usecase.ContributeInput
	handler := NewPlanHandler(&planServiceStub{
		contributeFn: func(ctx context.Context, input usecase.ContributeInput) (*domain.SavingsPlan, error) {
			captured = input
			return testPlan(), nil
		},
	})

	body, _ := json.Marshal(dto.ContributeRequest{
		Currency: "NGN",
		Amount:   decimal.RequireFromString("500"),
	})

	req := httptest.NewRequest(http.MethodPost, "/plans/plan-1/contribute", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	req = setChiURLParam(req, "id", "plan-1")
	rec := httptest.NewRecorder()

	handler.Contribute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.PlanID != "plan-1" || captured.Amount.Amount != 50000 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestPlanHandler_Pause_InvalidTransition(t *testing.T) {
	handler := NewPlanHandler(&planServiceStub{
		transitionFn: func(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
			return nil, domain.ErrInvalidPlanTransition
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/plans/plan-1/pause", nil)
	req.Header.Set("X-User-ID", "user-1")
	req = setChiURLParam(req, "id", "plan-1")
	rec := httptest.NewRecorder()

	handler.Pause(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPlanHandler_Progress(t *testing.T) {
	handler := NewPlanHandler(&planServiceStub{
		progressFn: func(ctx context.Context, planID, userID string) (*domain.Progress, error) {
			return &domain.Progress{
				ProgressPercentage: decimal.RequireFromString("50"),
				DaysRemaining:      10,
				ContributionStreak: 4,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/plans/plan-1/progress", nil)
	req.Header.Set("X-User-ID", "user-1")
	req = setChiURLParam(req, "id", "plan-1")
	rec := httptest.NewRecorder()

	handler.Progress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ProgressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DaysRemaining != 10 || resp.ContributionStreak != 4 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
