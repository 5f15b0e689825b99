// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealkit/v1/internal/domain/plan"
)

// PlanRepository defines the interface for meal plan persistence.
// Every operation is a single statement; concurrent updates are
// last-writer-wins.
type PlanRepository interface {
	// Insert stores a new document, assigning identity and timestamps
	// when they are zero. The stored document is mutated in place.
	Insert(ctx context.Context, doc *plan.Document) error

	// FindAll returns every stored document, newest first.
	FindAll(ctx context.Context) ([]*plan.Document, error)

	// FindByID returns the document or plan.ErrPlanNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*plan.Document, error)

	// Update applies a read-modify-write: the stored document is
	// loaded, passed to apply, and written back with a fresh updated
	// timestamp. Returns plan.ErrPlanNotFound for unknown ids.
	Update(ctx context.Context, id uuid.UUID, apply func(*plan.Document)) error

	// Delete removes the document, returning plan.ErrPlanNotFound when
	// nothing was stored under id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompletionService defines the interface to the remote model. It
// returns a parsed draft, plan.ErrNoCompletion for any transient
// failure, or the caller's context error on cancellation.
type CompletionService interface {
	GeneratePlanDraft(ctx context.Context, req plan.GenerateRequest) (*plan.Draft, error)
}
