package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mealkit/v1/internal/domain/plan"
)

// StubCompletionService is a scripted CompletionService double.
type StubCompletionService struct {
	Draft *plan.Draft
	Err   error

	// GenerateFunc overrides the canned Draft/Err pair when set.
	GenerateFunc func(ctx context.Context, req plan.GenerateRequest) (*plan.Draft, error)

	Calls []plan.GenerateRequest
}

// GeneratePlanDraft records the request and returns the scripted result.
func (s *StubCompletionService) GeneratePlanDraft(ctx context.Context, req plan.GenerateRequest) (*plan.Draft, error) {
	s.Calls = append(s.Calls, req)
	if s.GenerateFunc != nil {
		return s.GenerateFunc(ctx, req)
	}
	return s.Draft, s.Err
}

// MemoryPlanRepository is an in-memory PlanRepository for tests.
type MemoryPlanRepository struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*plan.Document

	InsertErr error
}

// NewMemoryPlanRepository creates an empty in-memory repository.
func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{plans: make(map[uuid.UUID]*plan.Document)}
}

// Insert stores a copy of the document, assigning id and timestamps.
func (r *MemoryPlanRepository) Insert(ctx context.Context, doc *plan.Document) error {
	if r.InsertErr != nil {
		return r.InsertErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	stored := *doc
	r.plans[doc.ID] = &stored
	return nil
}

// FindAll returns stored documents, newest first.
func (r *MemoryPlanRepository) FindAll(ctx context.Context) ([]*plan.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]*plan.Document, 0, len(r.plans))
	for _, doc := range r.plans {
		copied := *doc
		docs = append(docs, &copied)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// FindByID returns the document or plan.ErrPlanNotFound.
func (r *MemoryPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.plans[id]
	if !ok {
		return nil, plan.ErrPlanNotFound
	}
	copied := *doc
	return &copied, nil
}

// Update applies a read-modify-write against the stored document.
func (r *MemoryPlanRepository) Update(ctx context.Context, id uuid.UUID, apply func(*plan.Document)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.plans[id]
	if !ok {
		return plan.ErrPlanNotFound
	}

	apply(doc)
	doc.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes the stored document.
func (r *MemoryPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return plan.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}
