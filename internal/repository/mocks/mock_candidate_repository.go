package mocks

import (
	"context"

	"certapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ApplyCoverage(ctx context.Context, candidateID string, indicatorIDs []string, evidenceID string) error {
	args := m.Called(ctx, candidateID, indicatorIDs, evidenceID)
	return args.Error(0)
}

func (m *MockCandidateRepository) GetCoverage(ctx context.Context, candidateID string) (model.CoverageLedger, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.CoverageLedger), args.Error(1)
}
