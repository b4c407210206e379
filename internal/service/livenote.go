package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"certapi/internal/model"
	"certapi/internal/repository"
)

var ErrNoteRequired = errors.New("note text is required")

// AssessmentService handles live assessor note-taking. It reuses the same
// validation and audit path as ingestion but never touches the coverage ledger.
type AssessmentService interface {
	// AppendLiveNote upserts the (tenant, candidate, assessor) session and
	// appends one note, emitting one audit entry.
	AppendLiveNote(ctx context.Context, tenantID, candidateID, assessorID, noteText string) (*model.SessionNote, error)
}

type assessmentService struct {
	candidates  repository.CandidateRepository
	assessments repository.AssessmentRepository
	audit       AuditSink
	log         *logrus.Entry
}

// NewAssessmentService constructs a new AssessmentService.
func NewAssessmentService(
	candidates repository.CandidateRepository,
	assessments repository.AssessmentRepository,
	audit AuditSink,
) AssessmentService {
	return &assessmentService{
		candidates:  candidates,
		assessments: assessments,
		audit:       audit,
		log:         logrus.WithField("component", "assessment_service"),
	}
}

func (s *assessmentService) AppendLiveNote(ctx context.Context, tenantID, candidateID, assessorID, noteText string) (*model.SessionNote, error) {
	if strings.TrimSpace(noteText) == "" {
		return nil, ErrNoteRequired
	}

	candidate, err := requireCandidateTenant(ctx, s.candidates, tenantID, candidateID)
	if err != nil {
		return nil, err
	}

	note := model.SessionNote{
		Text:      noteText,
		Timestamp: time.Now().UTC(),
	}
	if _, err := s.assessments.AppendNote(ctx, tenantID, candidate.ID, assessorID, note); err != nil {
		return nil, err
	}

	s.audit.Emit(model.AuditEntry{
		TenantID:   tenantID,
		ActorID:    assessorID,
		Action:     model.ActionAssessmentLiveNote,
		TargetType: "candidate",
		TargetID:   candidate.ID,
	})

	return &note, nil
}
