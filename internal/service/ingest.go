package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"certapi/internal/model"
	"certapi/internal/provider"
	"certapi/internal/repository"
	"certapi/internal/storage"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrCrossTenantAccess = errors.New("cross_tenant_access_denied")
	ErrContentRequired   = errors.New("either media or text/description is required")
	ErrEvidenceNotFound  = errors.New("evidence not found")
)

const (
	coverageAttempts = 3
	coverageBackoff  = 100 * time.Millisecond
	presignExpiry    = 15 * time.Minute
)

// AuditSink accepts audit entries for asynchronous, retried persistence.
// Emitting never blocks the pipeline and never rolls anything back.
type AuditSink interface {
	Emit(entry model.AuditEntry)
}

// IngestInput is everything the upload surface hands to the pipeline.
type IngestInput struct {
	TenantID            string
	CandidateID         string
	UploaderID          string
	Description         string
	Hints               []string
	Media               []byte
	DeclaredContentType string
	Filename            string
	Text                string
}

// IngestResult is the caller-visible outcome of one pipeline run. FraudFlags
// always accompany the likelihood so a degraded opinion is never mistaken for
// a confident clean result.
type IngestResult struct {
	EvidenceID            string            `json:"evidence_id"`
	MappedIndicators      []string          `json:"mapped_indicators"`
	AIGeneratedLikelihood float64           `json:"ai_generated_likelihood"`
	FraudFlags            []model.FraudFlag `json:"fraud_flags"`
}

// CoverageReport is the read-side view of a candidate's ledger.
type CoverageReport struct {
	CandidateID string               `json:"candidate_id"`
	Indicators  model.CoverageLedger `json:"indicators"`
	Covered     int                  `json:"covered"`
	Total       int                  `json:"total"`
}

// EvidenceService defines the use cases around evidence artifacts.
type EvidenceService interface {
	// Ingest runs the full intake pipeline: validate, classify, store, extract,
	// score and map concurrently, persist, apply coverage, audit.
	Ingest(ctx context.Context, in IngestInput) (*IngestResult, error)

	// Get returns a single evidence item, tenant-checked.
	Get(ctx context.Context, tenantID, id string) (*model.EvidenceItem, error)

	// ListByCandidate returns a candidate's evidence items, tenant-checked.
	ListByCandidate(ctx context.Context, tenantID, candidateID string) ([]model.EvidenceItem, error)

	// DownloadURL returns a presigned URL for the stored artifact bytes.
	DownloadURL(ctx context.Context, tenantID, id string) (string, error)

	// Coverage returns the candidate's coverage ledger with covered/total counts.
	Coverage(ctx context.Context, tenantID, candidateID string) (*CoverageReport, error)
}

// evidenceService is a concrete implementation of EvidenceService.
type evidenceService struct {
	candidates  repository.CandidateRepository
	evidence    repository.EvidenceRepository
	store       storage.Storage
	transcriber provider.Transcriber
	scorer      provider.AuthenticityScorer
	mapper      provider.IndicatorMapper
	audit       AuditSink
	log         *logrus.Entry
}

// NewEvidenceService constructs a new EvidenceService. All collaborators are
// injected; tests substitute fakes for the providers and repositories.
func NewEvidenceService(
	candidates repository.CandidateRepository,
	evidence repository.EvidenceRepository,
	store storage.Storage,
	transcriber provider.Transcriber,
	scorer provider.AuthenticityScorer,
	mapper provider.IndicatorMapper,
	audit AuditSink,
) EvidenceService {
	return &evidenceService{
		candidates:  candidates,
		evidence:    evidence,
		store:       store,
		transcriber: transcriber,
		scorer:      scorer,
		mapper:      mapper,
		audit:       audit,
		log:         logrus.WithField("component", "evidence_service"),
	}
}

func (s *evidenceService) Ingest(ctx context.Context, in IngestInput) (*IngestResult, error) {
	// Tenant isolation is checked before any external provider call so no
	// candidate content leaks across tenant boundaries via third-party APIs.
	candidate, err := requireCandidateTenant(ctx, s.candidates, in.TenantID, in.CandidateID)
	if err != nil {
		return nil, err
	}

	if len(in.Media) == 0 && strings.TrimSpace(in.Text) == "" && strings.TrimSpace(in.Description) == "" {
		return nil, ErrContentRequired
	}

	evidenceID := uuid.New().String()
	kind := model.MediaText
	storagePath := ""

	if len(in.Media) > 0 {
		kind = DetectMediaKind(in.DeclaredContentType, in.Filename)
		key := path.Join("evidence", in.TenantID, in.CandidateID, evidenceID+filepath.Ext(in.Filename))
		_, err := s.store.Put(ctx, key, bytes.NewReader(in.Media), storage.PutObjectOptions{
			Size:        int64(len(in.Media)),
			ContentType: in.DeclaredContentType,
			Metadata: map[string]string{
				"original-filename": in.Filename,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		storagePath = key
	}

	content, transcript := s.extract(ctx, kind, in)

	// The scorer and mapper are independent; issue both calls concurrently and
	// join before the aggregator step. Each degrades to its sentinel on
	// failure, so neither can abort the run.
	var (
		assessment model.AuthenticityAssessment
		mapping    provider.MappingResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.scorer.Score(gctx, content)
		if err != nil {
			s.log.WithError(err).WithField("evidence_id", evidenceID).Warn("authenticity scorer degraded")
			a = provider.DegradedAssessment()
		}
		assessment = a
		return nil
	})
	g.Go(func() error {
		m, err := s.mapper.MapIndicators(gctx, content)
		if err != nil {
			s.log.WithError(err).WithField("evidence_id", evidenceID).Warn("indicator mapper degraded")
			m = provider.DegradedMapping()
		}
		mapping = m
		return nil
	})
	_ = g.Wait()

	indicators := mergeIndicators(mapping.Indicators, in.Hints)
	// Scorer flags lead: consumers display the first flag as primary.
	flags := append(append([]model.FraudFlag{}, assessment.FraudFlags...), mapping.FraudFlags...)
	// The dedicated scorer is authoritative; the mapper's figure is secondary.
	likelihood := assessment.AIGeneratedLikelihood

	item := &model.EvidenceItem{
		ID:                    evidenceID,
		TenantID:              in.TenantID,
		CandidateID:           candidate.ID,
		UploadedByUserID:      in.UploaderID,
		MediaKind:             kind,
		StoragePath:           storagePath,
		Description:           in.Description,
		ExtractedText:         transcript,
		MappedIndicators:      indicators,
		AIGeneratedLikelihood: likelihood,
		FraudFlags:            flags,
		CreatedAt:             time.Now().UTC(),
	}

	stored, err := s.evidence.Create(ctx, item)
	if err != nil {
		// Rollback: delete the object from storage
		if storagePath != "" {
			if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
				return nil, fmt.Errorf("evidence save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("evidence save failed: %w", err)
	}

	// The ledger update is the one mutation that must not be silently dropped;
	// retry with bounded attempts and surface exhaustion as a hard failure so
	// the caller knows coverage was not durably recorded.
	if err := s.applyCoverageWithRetry(ctx, candidate.ID, indicators, stored.ID); err != nil {
		return nil, fmt.Errorf("coverage update: %w", err)
	}

	s.audit.Emit(model.AuditEntry{
		TenantID:   in.TenantID,
		ActorID:    in.UploaderID,
		Action:     model.ActionEvidenceUploaded,
		TargetType: "candidate",
		TargetID:   candidate.ID,
	})

	return &IngestResult{
		EvidenceID:            stored.ID,
		MappedIndicators:      indicators,
		AIGeneratedLikelihood: likelihood,
		FraudFlags:            flags,
	}, nil
}

// extract resolves the machine-readable content for one artifact. Audio goes
// through the transcription provider; any failure or empty transcript falls
// back to the description and is never fatal.
func (s *evidenceService) extract(ctx context.Context, kind model.MediaKind, in IngestInput) (string, *string) {
	if kind == model.MediaAudio && len(in.Media) > 0 {
		mimeType := in.DeclaredContentType
		if mimeType == "" {
			mimeType = "audio/mpeg"
		}
		transcript, err := s.transcriber.Transcribe(ctx, in.Media, mimeType)
		if err != nil || strings.TrimSpace(transcript) == "" {
			if err != nil {
				s.log.WithError(err).Warn("transcription degraded, falling back to description")
			}
			return in.Description, nil
		}
		return transcript, &transcript
	}
	if strings.TrimSpace(in.Text) != "" {
		return in.Text, nil
	}
	return in.Description, nil
}

func (s *evidenceService) applyCoverageWithRetry(ctx context.Context, candidateID string, indicators []string, evidenceID string) error {
	if len(indicators) == 0 {
		return nil
	}
	var lastErr error
	for attempt := 0; attempt < coverageAttempts; attempt++ {
		if attempt > 0 {
			backoff := coverageBackoff << uint(attempt-1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = s.candidates.ApplyCoverage(ctx, candidateID, indicators, evidenceID); lastErr == nil {
			return nil
		}
		s.log.WithError(lastErr).WithFields(logrus.Fields{
			"candidate_id": candidateID,
			"attempt":      attempt + 1,
		}).Warn("coverage update failed, retrying")
	}
	return lastErr
}

// mergeIndicators unions the classifier output with caller-supplied hints so
// hints are never silently dropped by an unreliable classifier. Duplicates
// collapse; output is sorted for a deterministic response.
func mergeIndicators(mapped, hints []string) []string {
	seen := make(map[string]struct{}, len(mapped)+len(hints))
	out := make([]string, 0, len(mapped)+len(hints))
	for _, id := range append(append([]string{}, mapped...), hints...) {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// requireCandidateTenant loads the candidate and enforces the tenant guard.
// Shared by ingestion and live notes; both must reject before any side effect.
func requireCandidateTenant(ctx context.Context, candidates repository.CandidateRepository, tenantID, candidateID string) (*model.Candidate, error) {
	if candidateID == "" {
		return nil, ErrCandidateNotFound
	}
	candidate, err := candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	if candidate.TenantID != tenantID {
		return nil, ErrCrossTenantAccess
	}
	return candidate, nil
}

// Get returns an evidence item by ID, rejecting cross-tenant reads.
func (s *evidenceService) Get(ctx context.Context, tenantID, id string) (*model.EvidenceItem, error) {
	item, err := s.evidence.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}
	if item.TenantID != tenantID {
		return nil, ErrCrossTenantAccess
	}
	return item, nil
}

// ListByCandidate returns all evidence for one same-tenant candidate.
func (s *evidenceService) ListByCandidate(ctx context.Context, tenantID, candidateID string) ([]model.EvidenceItem, error) {
	candidate, err := requireCandidateTenant(ctx, s.candidates, tenantID, candidateID)
	if err != nil {
		return nil, err
	}
	return s.evidence.ListByCandidate(ctx, candidate.ID)
}

// DownloadURL presigns the stored artifact for download.
func (s *evidenceService) DownloadURL(ctx context.Context, tenantID, id string) (string, error) {
	item, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	if item.StoragePath == "" {
		return "", ErrEvidenceNotFound
	}
	return s.store.PresignGet(ctx, item.StoragePath, presignExpiry)
}

// Coverage reads the candidate's ledger. Read-only: the aggregator keeps
// exclusive write ownership.
func (s *evidenceService) Coverage(ctx context.Context, tenantID, candidateID string) (*CoverageReport, error) {
	candidate, err := requireCandidateTenant(ctx, s.candidates, tenantID, candidateID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.candidates.GetCoverage(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	covered := 0
	for _, entry := range ledger {
		if entry.Covered {
			covered++
		}
	}
	return &CoverageReport{
		CandidateID: candidate.ID,
		Indicators:  ledger,
		Covered:     covered,
		Total:       len(ledger),
	}, nil
}
