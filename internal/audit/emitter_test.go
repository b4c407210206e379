package audit

import (
	"errors"
	"testing"

	"certapi/internal/config"
	"certapi/internal/model"
	repoMocks "certapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEmitter_WritesEntry(t *testing.T) {
	repo := new(repoMocks.MockAuditRepository)
	repo.On("Append", mock.Anything, mock.MatchedBy(func(entry *model.AuditEntry) bool {
		return entry.ID != "" &&
			!entry.CreatedAt.IsZero() &&
			entry.Action == model.ActionEvidenceUploaded
	})).Return(nil).Once()

	e := NewEmitter(repo, config.AuditConfig{QueueSize: 8, MaxAttempts: 3})
	e.Emit(model.AuditEntry{
		TenantID: "tenant-a",
		ActorID:  "user-1",
		Action:   model.ActionEvidenceUploaded,
		TargetID: "cand-1",
	})
	e.Close()

	repo.AssertExpectations(t)
}

func TestEmitter_RetriesUntilSuccess(t *testing.T) {
	repo := new(repoMocks.MockAuditRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("db busy")).Once()
	repo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	e := NewEmitter(repo, config.AuditConfig{QueueSize: 8, MaxAttempts: 3})
	e.Emit(model.AuditEntry{Action: model.ActionAssessmentLiveNote})
	e.Close()

	repo.AssertNumberOfCalls(t, "Append", 2)
}

func TestEmitter_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := new(repoMocks.MockAuditRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))

	e := NewEmitter(repo, config.AuditConfig{QueueSize: 8, MaxAttempts: 2})
	e.Emit(model.AuditEntry{Action: model.ActionEvidenceUploaded})
	e.Close()

	// The failure stays inside the emitter; the pipeline never sees it.
	repo.AssertNumberOfCalls(t, "Append", 2)
}

func TestEmitter_CloseDrainsPendingEntries(t *testing.T) {
	repo := new(repoMocks.MockAuditRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	e := NewEmitter(repo, config.AuditConfig{QueueSize: 16, MaxAttempts: 3})
	for i := 0; i < 10; i++ {
		e.Emit(model.AuditEntry{Action: model.ActionEvidenceUploaded})
	}
	e.Close()

	repo.AssertNumberOfCalls(t, "Append", 10)
}

func TestEmitter_PreservesCallerProvidedIdentity(t *testing.T) {
	repo := new(repoMocks.MockAuditRepository)
	var got *model.AuditEntry
	repo.On("Append", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*model.AuditEntry) }).
		Return(nil).Once()

	e := NewEmitter(repo, config.AuditConfig{QueueSize: 8, MaxAttempts: 3})
	e.Emit(model.AuditEntry{ID: "fixed-id", Action: model.ActionEvidenceUploaded})
	e.Close()

	assert.NotNil(t, got)
	assert.Equal(t, "fixed-id", got.ID)
}
