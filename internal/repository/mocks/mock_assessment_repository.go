package mocks

import (
	"context"

	"certapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) AppendNote(ctx context.Context, tenantID, candidateID, assessorID string, note model.SessionNote) (string, error) {
	args := m.Called(ctx, tenantID, candidateID, assessorID, note)
	return args.String(0), args.Error(1)
}
