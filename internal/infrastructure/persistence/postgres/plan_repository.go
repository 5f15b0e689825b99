package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mealkit/v1/internal/domain/plan"
	"github.com/mealkit/v1/internal/ports/outbound"
)

// PlanRepository implements the meal plan repository interface.
// Documents are stored as a jsonb payload alongside a few scalar
// columns used for listing and indexing.
type PlanRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPlanRepository creates a new meal plan repository
func NewPlanRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.PlanRepository {
	return &PlanRepository{
		db:     db,
		logger: logger.Named("plan-repository"),
	}
}

// Insert stores a new document, assigning identity and timestamps
// when the caller left them zero.
func (r *PlanRepository) Insert(ctx context.Context, doc *plan.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	query := `
		INSERT INTO meal_plans
			(id, title, start_date, time_zone_id, primary_focus, estimated_budget, payload, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.StartDate,
		doc.TimeZoneID,
		doc.Meta.PrimaryFocus,
		float64(doc.Budget.EstimatedTotal),
		payload,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert meal plan",
			zap.String("plan_id", doc.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// FindAll returns every stored document, newest first.
func (r *PlanRepository) FindAll(ctx context.Context) ([]*plan.Document, error) {
	query := `SELECT id, payload FROM meal_plans ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list meal plans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	docs := []*plan.Document{}
	for rows.Next() {
		var id uuid.UUID
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}

		var doc plan.Document
		if err := json.Unmarshal(payload, &doc); err != nil {
			// A row that no longer parses is skipped rather than
			// failing the whole listing.
			r.logger.Warn("Skipping unreadable meal plan row",
				zap.String("plan_id", id.String()),
				zap.Error(err),
			)
			continue
		}

		doc.ID = id
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// FindByID returns the document or plan.ErrPlanNotFound.
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Document, error) {
	query := `SELECT payload FROM meal_plans WHERE id = $1 LIMIT 1`

	var payload []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, plan.ErrPlanNotFound
		}
		r.logger.Error("Failed to load meal plan",
			zap.String("plan_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	var doc plan.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan: %w", err)
	}

	doc.ID = id
	return &doc, nil
}

// Update applies a read-modify-write over the stored payload. The
// scalar columns are refreshed from the mutated document so listings
// stay consistent with the payload.
func (r *PlanRepository) Update(ctx context.Context, id uuid.UUID, apply func(*plan.Document)) error {
	doc, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	apply(doc)
	doc.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	query := `
		UPDATE meal_plans
		SET title = $2,
			start_date = $3,
			time_zone_id = $4,
			primary_focus = $5,
			estimated_budget = $6,
			payload = $7,
			updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.StartDate,
		doc.TimeZoneID,
		doc.Meta.PrimaryFocus,
		float64(doc.Budget.EstimatedTotal),
		payload,
		doc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update meal plan",
			zap.String("plan_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return plan.ErrPlanNotFound
	}

	return nil
}

// Delete removes the document, returning plan.ErrPlanNotFound when
// nothing was stored under id.
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM meal_plans WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete meal plan",
			zap.String("plan_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return plan.ErrPlanNotFound
	}

	r.logger.Info("Meal plan deleted", zap.String("plan_id", id.String()))
	return nil
}
