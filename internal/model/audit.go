package model

import "time"

// AuditEntry is one append-only record of a state-changing action.
// Entries are never mutated or deleted.
type AuditEntry struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Audit actions emitted by the pipeline.
const (
	ActionEvidenceUploaded   = "evidence_uploaded"
	ActionAssessmentLiveNote = "assessment_live_note"
)
