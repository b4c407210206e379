package repository

import (
	"context"

	"certapi/internal/model"
)

// EvidenceRepository defines data access for evidence items.
type EvidenceRepository interface {
	// Create inserts a new evidence record.
	// The caller provides required fields (ID, CreatedAt) per the schema.
	// Returns the stored item (may include values set by the DB).
	Create(ctx context.Context, item *model.EvidenceItem) (*model.EvidenceItem, error)

	// FindByID returns an evidence item by its ID.
	FindByID(ctx context.Context, id string) (*model.EvidenceItem, error)

	// ListByCandidate returns all evidence items for one candidate, newest first.
	ListByCandidate(ctx context.Context, candidateID string) ([]model.EvidenceItem, error)
}

// AuditRepository appends entries to the audit trail. The trail is
// append-only; no update or delete operations exist.
type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditEntry) error
}

// AssessmentRepository defines data access for live assessment sessions.
type AssessmentRepository interface {
	// AppendNote upserts the session keyed by (tenant, candidate, assessor)
	// and appends the note to it, atomically. Returns the session id.
	AppendNote(ctx context.Context, tenantID, candidateID, assessorID string, note model.SessionNote) (string, error)
}
