package model

import "time"

// IndicatorCoverage is one ledger entry: whether an indicator is covered and
// which evidence items support it. Covered never flips back to false and
// EvidenceIDs only grows; both invariants are enforced by the repository's
// atomic upsert.
type IndicatorCoverage struct {
	Covered     bool     `json:"covered"`
	EvidenceIDs []string `json:"evidence_ids"`
}

// Candidate tracks one person working toward certification within a tenant.
type Candidate struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	UserID      string    `json:"user_id"`
	TrajectID   string    `json:"traject_id"`
	StatusPhase string    `json:"status_phase"`
	CreatedAt   time.Time `json:"created_at"`
}

// CoverageLedger is the per-candidate map from indicator id to coverage.
type CoverageLedger map[string]IndicatorCoverage
