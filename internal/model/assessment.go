package model

import "time"

// SessionNote is one live note taken by an assessor during an observation.
type SessionNote struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// AssessmentSession groups the notes one assessor takes for one candidate.
// Keyed by (tenant, candidate, assessor); created on first note.
type AssessmentSession struct {
	ID          string        `json:"id"`
	TenantID    string        `json:"tenant_id"`
	CandidateID string        `json:"candidate_id"`
	AssessorID  string        `json:"assessor_id"`
	Notes       []SessionNote `json:"notes"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
