package repository

import (
	"context"

	"certapi/internal/model"
)

// CandidateRepository defines data access for candidate records and their
// indicator-coverage ledger. No business logic here, strictly persistence
// operations.
type CandidateRepository interface {
	// FindByID returns a candidate by its ID, any tenant. Callers enforce
	// tenant isolation before acting on the result.
	FindByID(ctx context.Context, id string) (*model.Candidate, error)

	// ApplyCoverage marks every indicator in indicatorIDs covered for the
	// candidate and adds evidenceID to each indicator's evidence-id set, as
	// one atomic update. The operation is idempotent: applying the same
	// (candidate, indicator, evidence) triple twice leaves the ledger
	// unchanged. Covered is never reset and evidence-id sets only grow.
	// A no-op when indicatorIDs is empty.
	ApplyCoverage(ctx context.Context, candidateID string, indicatorIDs []string, evidenceID string) error

	// GetCoverage returns the candidate's full coverage ledger.
	GetCoverage(ctx context.Context, candidateID string) (model.CoverageLedger, error)
}
