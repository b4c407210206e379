package mocks

import (
	"context"

	"certapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) AppendLiveNote(ctx context.Context, tenantID, candidateID, assessorID, noteText string) (*model.SessionNote, error) {
	args := m.Called(ctx, tenantID, candidateID, assessorID, noteText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SessionNote), args.Error(1)
}
