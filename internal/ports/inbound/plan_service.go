// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mealkit/v1/internal/domain/plan"
)

// PlanService defines the use cases for meal plan management.
// This is the primary port that HTTP handlers use.
type PlanService interface {
	// Generate produces a complete, normalized plan document and
	// persists it. A nil document with a nil error means neither the
	// model nor the fallback could produce a plan.
	Generate(ctx context.Context, req plan.GenerateRequest) (*plan.Document, error)

	// Queries
	ListPlans(ctx context.Context) ([]PlanSummary, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*plan.Document, error)

	// Mutations
	UpdatePlan(ctx context.Context, id uuid.UUID, patch UpdatePlanCommand) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
}

// PlanSummary is the listing projection of a stored document.
type PlanSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	StartDate       time.Time `json:"startDate"`
	PrimaryFocus    string    `json:"primaryFocus"`
	EstimatedBudget float64   `json:"estimatedBudget"`
	DayCount        int       `json:"dayCount"`
}

// NewPlanSummary projects a document into its listing shape.
func NewPlanSummary(doc *plan.Document) PlanSummary {
	title := doc.Title
	if title == "" {
		title = "Weekly Meal Plan"
	}
	return PlanSummary{
		ID:              doc.ID,
		Title:           title,
		StartDate:       doc.StartDate,
		PrimaryFocus:    doc.Meta.PrimaryFocus,
		EstimatedBudget: float64(doc.Budget.EstimatedTotal),
		DayCount:        len(doc.Days),
	}
}

// UpdatePlanCommand carries a partial merge update. Only supplied
// fields overwrite stored values; blank or nil fields leave the stored
// value untouched.
type UpdatePlanCommand struct {
	Title       string                `json:"title"`
	StartDate   *time.Time            `json:"startDate"`
	TimeZoneID  string                `json:"timeZoneId"`
	Days        []plan.MealDay        `json:"days"`
	Meta        *plan.MealPlanMeta    `json:"meta"`
	Shopping    *plan.ShoppingPlanner `json:"shopping"`
	Budget      *plan.BudgetPlanner   `json:"budget"`
	Prep        *plan.PrepScheduler   `json:"prep"`
	Pantry      *plan.PantrySnapshot  `json:"pantry"`
	CookingTips []string              `json:"cookingTips"`
}
