package mocks

import (
	"context"

	"certapi/internal/model"
	"certapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockEvidenceService struct {
	mock.Mock
}

func (m *MockEvidenceService) Ingest(ctx context.Context, in service.IngestInput) (*service.IngestResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

func (m *MockEvidenceService) Get(ctx context.Context, tenantID, id string) (*model.EvidenceItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EvidenceItem), args.Error(1)
}

func (m *MockEvidenceService) ListByCandidate(ctx context.Context, tenantID, candidateID string) ([]model.EvidenceItem, error) {
	args := m.Called(ctx, tenantID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EvidenceItem), args.Error(1)
}

func (m *MockEvidenceService) DownloadURL(ctx context.Context, tenantID, id string) (string, error) {
	args := m.Called(ctx, tenantID, id)
	return args.String(0), args.Error(1)
}

func (m *MockEvidenceService) Coverage(ctx context.Context, tenantID, candidateID string) (*service.CoverageReport, error) {
	args := m.Called(ctx, tenantID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CoverageReport), args.Error(1)
}
