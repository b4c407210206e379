package mocks

import (
	"context"

	"certapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockEvidenceRepository struct {
	mock.Mock
}

func (m *MockEvidenceRepository) Create(ctx context.Context, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EvidenceItem), args.Error(1)
}

func (m *MockEvidenceRepository) FindByID(ctx context.Context, id string) (*model.EvidenceItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EvidenceItem), args.Error(1)
}

func (m *MockEvidenceRepository) ListByCandidate(ctx context.Context, candidateID string) ([]model.EvidenceItem, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EvidenceItem), args.Error(1)
}
