package mocks

import (
	"context"

	"certapi/internal/model"
	"certapi/internal/provider"

	"github.com/stretchr/testify/mock"
)

type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	args := m.Called(ctx, audio, mimeType)
	return args.String(0), args.Error(1)
}

type MockAuthenticityScorer struct {
	mock.Mock
}

func (m *MockAuthenticityScorer) Score(ctx context.Context, content string) (model.AuthenticityAssessment, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(model.AuthenticityAssessment), args.Error(1)
}

type MockIndicatorMapper struct {
	mock.Mock
}

func (m *MockIndicatorMapper) MapIndicators(ctx context.Context, content string) (provider.MappingResult, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(provider.MappingResult), args.Error(1)
}
