package plan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appplan "github.com/mealkit/v1/internal/application/plan"
	"github.com/mealkit/v1/internal/domain/plan"
	"github.com/mealkit/v1/internal/ports/inbound"
	apperrors "github.com/mealkit/v1/pkg/errors"
	"github.com/mealkit/v1/test/testutils"
)

func newService(repo *testutils.MemoryPlanRepository, completions *testutils.StubCompletionService, useFallback bool) inbound.PlanService {
	return appplan.NewPlannerService(repo, completions, useFallback, zap.NewNop())
}

func validRequest() plan.GenerateRequest {
	return plan.GenerateRequest{
		Age:               34,
		Gender:            "female",
		WeightInLbs:       150,
		FitnessGoal:       "Strength",
		DietaryPreference: "vegetarian",
		NutritionFocus:    "high protein",
		StartDate:         time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateFromDraft(t *testing.T) {
	factory := testutils.NewPlanFactory(1)
	repo := testutils.NewMemoryPlanRepository()
	completions := &testutils.StubCompletionService{Draft: factory.Draft()}
	svc := newService(repo, completions, true)

	doc, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Len(t, doc.Days, plan.DaysPerPlan)

	// The stored copy matches what was returned.
	stored, err := repo.FindByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, stored.Title)

	// Defaults were applied before the completion call.
	require.Len(t, completions.Calls, 1)
	assert.Equal(t, "UTC", completions.Calls[0].TimeZoneID)
	assert.Equal(t, 3, completions.Calls[0].MealsPerDay)
}

func TestGenerateFallsBackOnModelFailure(t *testing.T) {
	repo := testutils.NewMemoryPlanRepository()
	completions := &testutils.StubCompletionService{Err: plan.ErrNoCompletion}
	svc := newService(repo, completions, true)

	doc, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, doc)

	// The fallback is recognizable by its template meals.
	assert.Equal(t, "Garden Veggie Scramble", doc.Days[0].Meals[0].Name)
	assert.Equal(t, "Strength 7-Day Meal Plan", doc.Title)

	plans, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestGenerateFallbackDisabled(t *testing.T) {
	repo := testutils.NewMemoryPlanRepository()
	completions := &testutils.StubCompletionService{Err: plan.ErrNoCompletion}
	svc := newService(repo, completions, false)

	doc, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, doc)

	// Nothing is persisted.
	plans, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestGenerateCancellationPropagates(t *testing.T) {
	repo := testutils.NewMemoryPlanRepository()
	completions := &testutils.StubCompletionService{
		GenerateFunc: func(ctx context.Context, req plan.GenerateRequest) (*plan.Draft, error) {
			return nil, ctx.Err()
		},
	}
	svc := newService(repo, completions, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := svc.Generate(ctx, validRequest())
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)

	plans, findErr := repo.FindAll(context.Background())
	require.NoError(t, findErr)
	assert.Empty(t, plans)
}

func TestGenerateMissingAPIKey(t *testing.T) {
	repo := testutils.NewMemoryPlanRepository()
	completions := &testutils.StubCompletionService{Err: plan.ErrMissingAPIKey}
	svc := newService(repo, completions, true)

	doc, err := svc.Generate(context.Background(), validRequest())
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternalServiceError, apperrors.GetCode(err))
}

func TestGenerateInsertFailure(t *testing.T) {
	factory := testutils.NewPlanFactory(2)
	repo := testutils.NewMemoryPlanRepository()
	repo.InsertErr = errors.New("connection refused")
	completions := &testutils.StubCompletionService{Draft: factory.Draft()}
	svc := newService(repo, completions, true)

	doc, err := svc.Generate(context.Background(), validRequest())
	assert.Nil(t, doc)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(err))
}

func TestGetPlanNotFound(t *testing.T) {
	svc := newService(testutils.NewMemoryPlanRepository(), &testutils.StubCompletionService{}, true)

	doc, err := svc.GetPlan(context.Background(), uuid.New())
	assert.Nil(t, doc)
	assert.Equal(t, apperrors.CodePlanNotFound, apperrors.GetCode(err))
}

func TestListPlansNewestFirst(t *testing.T) {
	factory := testutils.NewPlanFactory(3)
	repo := testutils.NewMemoryPlanRepository()
	svc := newService(repo, &testutils.StubCompletionService{}, true)

	first := factory.Document()
	require.NoError(t, repo.Insert(context.Background(), first))
	time.Sleep(2 * time.Millisecond)
	second := factory.Document()
	require.NoError(t, repo.Insert(context.Background(), second))

	summaries, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, first.ID, summaries[1].ID)
	assert.Equal(t, plan.DaysPerPlan, summaries[0].DayCount)
}

func TestUpdatePlanMergeSemantics(t *testing.T) {
	factory := testutils.NewPlanFactory(4)
	repo := testutils.NewMemoryPlanRepository()
	svc := newService(repo, &testutils.StubCompletionService{}, true)

	doc := factory.Document()
	require.NoError(t, repo.Insert(context.Background(), doc))
	originalTitle := doc.Title
	originalDays := len(doc.Days)

	t.Run("BlankFieldsLeaveStoredValues", func(t *testing.T) {
		err := svc.UpdatePlan(context.Background(), doc.ID, inbound.UpdatePlanCommand{
			Title: "   ",
		})
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, originalTitle, stored.Title)
		assert.Len(t, stored.Days, originalDays)
	})

	t.Run("SuppliedFieldsOverwrite", func(t *testing.T) {
		newStart := time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC)
		err := svc.UpdatePlan(context.Background(), doc.ID, inbound.UpdatePlanCommand{
			Title:     "Spring Reset",
			StartDate: &newStart,
			Budget:    &plan.BudgetPlanner{EstimatedTotal: 275, CategoryTotals: plan.FlexFloatMap{}, SavingsTip: "Bulk buy."},
		})
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Spring Reset", stored.Title)
		assert.Equal(t, newStart, stored.StartDate)
		assert.Equal(t, plan.FlexFloat(275), stored.Budget.EstimatedTotal)
	})

	t.Run("TimeZoneAlsoUpdatesPreferences", func(t *testing.T) {
		err := svc.UpdatePlan(context.Background(), doc.ID, inbound.UpdatePlanCommand{
			TimeZoneID: "Europe/Paris",
		})
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Europe/Paris", stored.TimeZoneID)
		assert.Equal(t, "Europe/Paris", stored.Preferences.TimeZoneID)
	})

	t.Run("EmptyTipsSliceOverwrites", func(t *testing.T) {
		err := svc.UpdatePlan(context.Background(), doc.ID, inbound.UpdatePlanCommand{
			CookingTips: []string{},
		})
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.CookingTips)
	})

	t.Run("UnknownIDReturnsNotFound", func(t *testing.T) {
		err := svc.UpdatePlan(context.Background(), uuid.New(), inbound.UpdatePlanCommand{Title: "x"})
		assert.Equal(t, apperrors.CodePlanNotFound, apperrors.GetCode(err))
	})
}

func TestDeletePlan(t *testing.T) {
	factory := testutils.NewPlanFactory(5)
	repo := testutils.NewMemoryPlanRepository()
	svc := newService(repo, &testutils.StubCompletionService{}, true)

	doc := factory.Document()
	require.NoError(t, repo.Insert(context.Background(), doc))

	require.NoError(t, svc.DeletePlan(context.Background(), doc.ID))

	_, err := repo.FindByID(context.Background(), doc.ID)
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)

	err = svc.DeletePlan(context.Background(), doc.ID)
	assert.Equal(t, apperrors.CodePlanNotFound, apperrors.GetCode(err))
}
