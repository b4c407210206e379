package mocks

import (
	"certapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Emit(entry model.AuditEntry) {
	m.Called(entry)
}
