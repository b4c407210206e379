package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"certapi/internal/model"
	"certapi/internal/repository"
)

// CandidatePostgres is a PostgreSQL implementation of repository.CandidateRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CandidatePostgres struct {
	db *sql.DB
}

// NewCandidatePostgres creates a new CandidatePostgres repository.
func NewCandidatePostgres(db *sql.DB) *CandidatePostgres {
	return &CandidatePostgres{db: db}
}

var _ repository.CandidateRepository = (*CandidatePostgres)(nil)

// FindByID fetches a single candidate by its ID.
func (r *CandidatePostgres) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	const q = `
		SELECT id, tenant_id, user_id, traject_id, status_phase, created_at
		FROM candidates
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Candidate
	if err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.UserID,
		&c.TrajectID,
		&c.StatusPhase,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// coverageUpsert sets covered and merges the evidence-id set in one statement.
// The DISTINCT aggregation makes repeated applications of the same evidence id
// a no-op, and concurrent upserts for the same indicator serialize on the row.
const coverageUpsert = `
	INSERT INTO indicator_coverage (candidate_id, indicator_id, covered, evidence_ids)
	VALUES ($1, $2, TRUE, $3)
	ON CONFLICT (candidate_id, indicator_id) DO UPDATE
	SET covered      = TRUE,
	    evidence_ids = (
	        SELECT COALESCE(jsonb_agg(DISTINCT e), '[]'::jsonb)
	        FROM jsonb_array_elements_text(indicator_coverage.evidence_ids || excluded.evidence_ids) AS t(e)
	    ),
	    updated_at   = now()
`

// ApplyCoverage marks the given indicators covered and records the evidence id,
// all within a single transaction.
func (r *CandidatePostgres) ApplyCoverage(ctx context.Context, candidateID string, indicatorIDs []string, evidenceID string) error {
	if len(indicatorIDs) == 0 {
		return nil
	}

	evidenceSet, err := json.Marshal([]string{evidenceID})
	if err != nil {
		return fmt.Errorf("marshal evidence id: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin coverage tx: %w", err)
	}
	defer tx.Rollback()

	for _, indicatorID := range indicatorIDs {
		if _, err := tx.ExecContext(ctx, coverageUpsert, candidateID, indicatorID, evidenceSet); err != nil {
			return fmt.Errorf("upsert coverage for %s: %w", indicatorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit coverage tx: %w", err)
	}
	return nil
}

// GetCoverage returns the candidate's coverage ledger.
func (r *CandidatePostgres) GetCoverage(ctx context.Context, candidateID string) (model.CoverageLedger, error) {
	const q = `
		SELECT indicator_id, covered, evidence_ids
		FROM indicator_coverage
		WHERE candidate_id = $1
	`
	rows, err := r.db.QueryContext(ctx, q, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ledger := make(model.CoverageLedger)
	for rows.Next() {
		var (
			indicatorID string
			covered     bool
			rawIDs      []byte
		)
		if err := rows.Scan(&indicatorID, &covered, &rawIDs); err != nil {
			return nil, err
		}
		var evidenceIDs []string
		if err := json.Unmarshal(rawIDs, &evidenceIDs); err != nil {
			return nil, fmt.Errorf("decode evidence ids for %s: %w", indicatorID, err)
		}
		ledger[indicatorID] = model.IndicatorCoverage{Covered: covered, EvidenceIDs: evidenceIDs}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}
