package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"certapi/internal/model"
	"certapi/internal/repository"
)

// AssessmentPostgres is a PostgreSQL implementation of repository.AssessmentRepository.
type AssessmentPostgres struct {
	db *sql.DB
}

// NewAssessmentPostgres creates a new AssessmentPostgres repository.
func NewAssessmentPostgres(db *sql.DB) *AssessmentPostgres {
	return &AssessmentPostgres{db: db}
}

var _ repository.AssessmentRepository = (*AssessmentPostgres)(nil)

// AppendNote upserts the (tenant, candidate, assessor) session and appends the
// note to its JSONB notes array in one statement.
func (r *AssessmentPostgres) AppendNote(ctx context.Context, tenantID, candidateID, assessorID string, note model.SessionNote) (string, error) {
	const q = `
		INSERT INTO assessment_sessions (id, tenant_id, candidate_id, assessor_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, jsonb_build_array($5::jsonb), now(), now())
		ON CONFLICT (tenant_id, candidate_id, assessor_id) DO UPDATE
		SET notes      = assessment_sessions.notes || excluded.notes,
		    updated_at = now()
		RETURNING id
	`
	raw, err := json.Marshal(note)
	if err != nil {
		return "", fmt.Errorf("marshal note: %w", err)
	}

	var sessionID string
	err = r.db.QueryRowContext(ctx, q, uuid.New().String(), tenantID, candidateID, assessorID, raw).Scan(&sessionID)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}
