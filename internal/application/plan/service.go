// Package plan provides the application layer for meal plan management
// This implements the use cases defined in the inbound ports
package plan

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealkit/v1/internal/domain/plan"
	"github.com/mealkit/v1/internal/ports/inbound"
	"github.com/mealkit/v1/internal/ports/outbound"
	"github.com/mealkit/v1/pkg/errors"
)

// PlannerService implements the meal plan use cases
type PlannerService struct {
	planRepo    outbound.PlanRepository
	completions outbound.CompletionService
	useFallback bool
	logger      *zap.Logger
}

// NewPlannerService creates a new planner service
func NewPlannerService(
	planRepo outbound.PlanRepository,
	completions outbound.CompletionService,
	useFallback bool,
	logger *zap.Logger,
) inbound.PlanService {
	return &PlannerService{
		planRepo:    planRepo,
		completions: completions,
		useFallback: useFallback,
		logger:      logger.Named("planner-service"),
	}
}

// Generate builds a weekly plan from the request, preferring the model
// draft and falling back to the template plan when the model cannot
// deliver one.
func (s *PlannerService) Generate(ctx context.Context, req plan.GenerateRequest) (*plan.Document, error) {
	req.ApplyDefaults()
	prefs := req.ToPreferences()

	s.logger.Info("Generating meal plan",
		zap.String("fitness_goal", prefs.FitnessGoal),
		zap.String("dietary_preference", prefs.DietaryPreference),
		zap.Int("meals_per_day", prefs.MealsPerDay),
	)

	doc, err := s.buildDocument(ctx, req, prefs)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	if err := s.planRepo.Insert(ctx, doc); err != nil {
		return nil, errors.NewDatabaseError("insert meal plan", err)
	}

	s.logger.Info("Meal plan stored",
		zap.String("plan_id", doc.ID.String()),
		zap.String("title", doc.Title),
	)
	return doc, nil
}

// buildDocument runs the draft-or-fallback decision. A nil document
// with a nil error means generation is disabled and the model failed.
func (s *PlannerService) buildDocument(ctx context.Context, req plan.GenerateRequest, prefs plan.Preferences) (*plan.Document, error) {
	draft, err := s.completions.GeneratePlanDraft(ctx, req)
	if err == nil {
		return NormalizeDraft(draft, prefs, req.StartDate, req.Title), nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if stderrors.Is(err, plan.ErrMissingAPIKey) {
		return nil, errors.NewExternalServiceError("OpenRouter", err)
	}
	if !stderrors.Is(err, plan.ErrNoCompletion) {
		return nil, errors.Wrap(err, "generate plan draft")
	}

	if !s.useFallback {
		s.logger.Warn("Model draft unavailable and fallback disabled", zap.Error(err))
		return nil, nil
	}

	s.logger.Warn("Model draft unavailable, using fallback plan", zap.Error(err))
	return BuildFallback(prefs, req.StartDate, req.Title), nil
}

// ListPlans returns listing summaries, newest first.
func (s *PlannerService) ListPlans(ctx context.Context) ([]inbound.PlanSummary, error) {
	docs, err := s.planRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list meal plans", err)
	}

	summaries := make([]inbound.PlanSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, inbound.NewPlanSummary(doc))
	}
	return summaries, nil
}

// GetPlan returns the full stored document.
func (s *PlannerService) GetPlan(ctx context.Context, id uuid.UUID) (*plan.Document, error) {
	doc, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, plan.ErrPlanNotFound) {
			return nil, errors.NewPlanNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("load meal plan", err)
	}
	return doc, nil
}

// UpdatePlan merges the supplied fields into the stored document.
// Blank strings, nil pointers, and nil slices leave stored values in
// place so clients can patch a single section at a time.
func (s *PlannerService) UpdatePlan(ctx context.Context, id uuid.UUID, patch inbound.UpdatePlanCommand) error {
	err := s.planRepo.Update(ctx, id, func(doc *plan.Document) {
		if title := strings.TrimSpace(patch.Title); title != "" {
			doc.Title = title
		}
		if patch.StartDate != nil {
			doc.StartDate = *patch.StartDate
		}
		if tz := strings.TrimSpace(patch.TimeZoneID); tz != "" {
			doc.TimeZoneID = tz
			doc.Preferences.TimeZoneID = tz
		}
		if len(patch.Days) > 0 {
			doc.Days = patch.Days
		}
		if patch.Meta != nil {
			doc.Meta = *patch.Meta
		}
		if patch.Shopping != nil {
			doc.Shopping = *patch.Shopping
		}
		if patch.Budget != nil {
			doc.Budget = *patch.Budget
		}
		if patch.Prep != nil {
			doc.Prep = *patch.Prep
		}
		if patch.Pantry != nil {
			doc.Pantry = *patch.Pantry
		}
		if patch.CookingTips != nil {
			doc.CookingTips = patch.CookingTips
		}
	})
	if err != nil {
		if stderrors.Is(err, plan.ErrPlanNotFound) {
			return errors.NewPlanNotFoundError(id.String())
		}
		return errors.NewDatabaseError("update meal plan", err)
	}

	s.logger.Info("Meal plan updated", zap.String("plan_id", id.String()))
	return nil
}

// DeletePlan removes the stored document.
func (s *PlannerService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	err := s.planRepo.Delete(ctx, id)
	if err != nil {
		if stderrors.Is(err, plan.ErrPlanNotFound) {
			return errors.NewPlanNotFoundError(id.String())
		}
		return errors.NewDatabaseError("delete meal plan", err)
	}

	s.logger.Info("Meal plan deleted", zap.String("plan_id", id.String()))
	return nil
}
