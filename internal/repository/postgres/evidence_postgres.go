package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"certapi/internal/model"
	"certapi/internal/repository"
)

// EvidencePostgres is a PostgreSQL implementation of repository.EvidenceRepository.
type EvidencePostgres struct {
	db *sql.DB
}

// NewEvidencePostgres creates a new EvidencePostgres repository.
func NewEvidencePostgres(db *sql.DB) *EvidencePostgres {
	return &EvidencePostgres{db: db}
}

var _ repository.EvidenceRepository = (*EvidencePostgres)(nil)

const evidenceColumns = `id, tenant_id, candidate_id, uploaded_by_user_id, media_kind,
		storage_path, description, extracted_text, mapped_indicators,
		ai_generated_likelihood, fraud_flags, created_at`

// Create inserts a new evidence row and returns the stored record.
func (r *EvidencePostgres) Create(ctx context.Context, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	const q = `
		INSERT INTO evidence_items (id, tenant_id, candidate_id, uploaded_by_user_id, media_kind,
			storage_path, description, extracted_text, mapped_indicators,
			ai_generated_likelihood, fraud_flags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + evidenceColumns

	indicators, err := json.Marshal(item.MappedIndicators)
	if err != nil {
		return nil, fmt.Errorf("marshal mapped indicators: %w", err)
	}
	flags, err := json.Marshal(item.FraudFlags)
	if err != nil {
		return nil, fmt.Errorf("marshal fraud flags: %w", err)
	}

	var extracted sql.NullString
	if item.ExtractedText != nil {
		extracted = sql.NullString{String: *item.ExtractedText, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, q,
		item.ID,
		item.TenantID,
		item.CandidateID,
		item.UploadedByUserID,
		string(item.MediaKind),
		item.StoragePath,
		item.Description,
		extracted,
		indicators,
		item.AIGeneratedLikelihood,
		flags,
		item.CreatedAt,
	)
	return scanEvidence(row)
}

// FindByID fetches a single evidence item by its ID.
func (r *EvidencePostgres) FindByID(ctx context.Context, id string) (*model.EvidenceItem, error) {
	const q = `
		SELECT ` + evidenceColumns + `
		FROM evidence_items
		WHERE id = $1
	`
	return scanEvidence(r.db.QueryRowContext(ctx, q, id))
}

// ListByCandidate returns a candidate's evidence items, newest first.
func (r *EvidencePostgres) ListByCandidate(ctx context.Context, candidateID string) ([]model.EvidenceItem, error) {
	const q = `
		SELECT ` + evidenceColumns + `
		FROM evidence_items
		WHERE candidate_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.EvidenceItem, 0)
	for rows.Next() {
		item, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvidence(row rowScanner) (*model.EvidenceItem, error) {
	var (
		out        model.EvidenceItem
		kind       string
		extracted  sql.NullString
		indicators []byte
		flags      []byte
	)
	if err := row.Scan(
		&out.ID,
		&out.TenantID,
		&out.CandidateID,
		&out.UploadedByUserID,
		&kind,
		&out.StoragePath,
		&out.Description,
		&extracted,
		&indicators,
		&out.AIGeneratedLikelihood,
		&flags,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.MediaKind = model.MediaKind(kind)
	if extracted.Valid {
		out.ExtractedText = &extracted.String
	}
	if err := json.Unmarshal(indicators, &out.MappedIndicators); err != nil {
		return nil, fmt.Errorf("decode mapped indicators: %w", err)
	}
	if err := json.Unmarshal(flags, &out.FraudFlags); err != nil {
		return nil, fmt.Errorf("decode fraud flags: %w", err)
	}
	return &out, nil
}
