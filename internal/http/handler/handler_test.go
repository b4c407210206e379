package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"certapi/internal/model"
	"certapi/internal/service"
	serviceMocks "certapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func withIdentity(req *http.Request) *http.Request {
	req.Header.Set(TenantHeader, "tenant-a")
	req.Header.Set(ActorHeader, "user-1")
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestIngestEvidence(t *testing.T) {
	candidateID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Post("/candidates/:id/evidence", IngestEvidence(mockSvc))

		expected := &service.IngestResult{
			EvidenceID:            "ev-1",
			MappedIndicators:      []string{"ind-a"},
			AIGeneratedLikelihood: 0.1,
			FraudFlags:            []model.FraudFlag{},
		}
		mockSvc.On("Ingest", mock.Anything, mock.MatchedBy(func(in service.IngestInput) bool {
			return in.TenantID == "tenant-a" &&
				in.CandidateID == candidateID &&
				in.UploaderID == "user-1" &&
				in.Text == "built a ci pipeline" &&
				len(in.Hints) == 2
		})).Return(expected, nil).Once()

		body, contentType := multipartBody(t, map[string]string{
			"description":     "a writeup",
			"text":            "built a ci pipeline",
			"indicator_hints": `["ind-a","ind-b"]`,
		})
		req := withIdentity(httptest.NewRequest(http.MethodPost, "/candidates/"+candidateID+"/evidence", body))
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result service.IngestResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "ev-1", result.EvidenceID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file upload", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Post("/candidates/:id/evidence", IngestEvidence(mockSvc))

		mockSvc.On("Ingest", mock.Anything, mock.MatchedBy(func(in service.IngestInput) bool {
			return in.Filename == "report.pdf" &&
				in.DeclaredContentType == "application/pdf" &&
				string(in.Media) == "%PDF-1.4 fake"
		})).Return(&service.IngestResult{EvidenceID: "ev-2"}, nil).Once()

		buf := new(bytes.Buffer)
		w := multipart.NewWriter(buf)
		require.NoError(t, w.WriteField("description", "portfolio"))
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {`form-data; name="file"; filename="report.pdf"`},
			"Content-Type":        {"application/pdf"},
		})
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/candidates/"+candidateID+"/evidence", buf))
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing identity headers", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Post("/candidates/:id/evidence", IngestEvidence(mockSvc))

		body, contentType := multipartBody(t, map[string]string{"text": "x"})
		req := httptest.NewRequest(http.MethodPost, "/candidates/"+candidateID+"/evidence", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
	})

	t.Run("invalid candidate id", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Post("/candidates/:id/evidence", IngestEvidence(mockSvc))

		body, contentType := multipartBody(t, map[string]string{"text": "x"})
		req := withIdentity(httptest.NewRequest(http.MethodPost, "/candidates/not-a-uuid/evidence", body))
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{"unknown candidate", service.ErrCandidateNotFound, http.StatusNotFound, "CANDIDATE_NOT_FOUND"},
			{"cross tenant", service.ErrCrossTenantAccess, http.StatusForbidden, "CROSS_TENANT_ACCESS_DENIED"},
			{"no content", service.ErrContentRequired, http.StatusBadRequest, "CONTENT_REQUIRED"},
			{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockSvc := new(serviceMocks.MockEvidenceService)
				app := fiber.New()
				app.Post("/candidates/:id/evidence", IngestEvidence(mockSvc))

				mockSvc.On("Ingest", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

				body, contentType := multipartBody(t, map[string]string{"text": "x"})
				req := withIdentity(httptest.NewRequest(http.MethodPost, "/candidates/"+candidateID+"/evidence", body))
				req.Header.Set("Content-Type", contentType)
				resp, _ := app.Test(req)

				assert.Equal(t, tt.wantStatus, resp.StatusCode)

				var payload errorPayload
				json.NewDecoder(resp.Body).Decode(&payload)
				assert.Equal(t, tt.wantCode, payload.Error.Code)
			})
		}
	})
}

func TestListCandidateEvidence(t *testing.T) {
	mockSvc := new(serviceMocks.MockEvidenceService)
	app := fiber.New()
	app.Get("/candidates/:id/evidence", ListCandidateEvidence(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("ListByCandidate", mock.Anything, "tenant-a", "cand-1").
			Return([]model.EvidenceItem{{ID: "ev-1"}, {ID: "ev-2"}}, nil).Once()

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/candidates/cand-1/evidence", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data  []model.EvidenceItem `json:"data"`
			Total int                  `json:"total"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Data, 2)
		assert.Equal(t, 2, body.Total)
	})

	t.Run("cross tenant", func(t *testing.T) {
		mockSvc.On("ListByCandidate", mock.Anything, "tenant-a", "cand-2").
			Return(nil, service.ErrCrossTenantAccess).Once()

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/candidates/cand-2/evidence", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetCoverage(t *testing.T) {
	mockSvc := new(serviceMocks.MockEvidenceService)
	app := fiber.New()
	app.Get("/candidates/:id/coverage", GetCoverage(mockSvc))

	mockSvc.On("Coverage", mock.Anything, "tenant-a", "cand-1").
		Return(&service.CoverageReport{
			CandidateID: "cand-1",
			Indicators: model.CoverageLedger{
				"ind-a": {Covered: true, EvidenceIDs: []string{"ev-1"}},
			},
			Covered: 1,
			Total:   1,
		}, nil).Once()

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/candidates/cand-1/coverage", nil))
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report service.CoverageReport
	json.NewDecoder(resp.Body).Decode(&report)
	assert.Equal(t, 1, report.Covered)
	assert.True(t, report.Indicators["ind-a"].Covered)
}

func TestAppendLiveNote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAssessmentService)
		app := fiber.New()
		app.Post("/candidates/:id/notes", AppendLiveNote(mockSvc))

		mockSvc.On("AppendLiveNote", mock.Anything, "tenant-a", "cand-1", "user-1", "good answer").
			Return(&model.SessionNote{Text: "good answer", Timestamp: time.Now().UTC()}, nil).Once()

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/candidates/cand-1/notes",
			strings.NewReader(`{"text":"good answer"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty note", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAssessmentService)
		app := fiber.New()
		app.Post("/candidates/:id/notes", AppendLiveNote(mockSvc))

		mockSvc.On("AppendLiveNote", mock.Anything, "tenant-a", "cand-1", "user-1", "").
			Return(nil, service.ErrNoteRequired).Once()

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/candidates/cand-1/notes",
			strings.NewReader(`{"text":""}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "NOTE_REQUIRED", payload.Error.Code)
	})
}

func TestGetEvidence(t *testing.T) {
	evidenceID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Get("/evidence/:id", GetEvidence(mockSvc))

		mockSvc.On("Get", mock.Anything, "tenant-a", evidenceID).
			Return(&model.EvidenceItem{ID: evidenceID, TenantID: "tenant-a"}, nil).Once()

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/evidence/"+evidenceID, nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Get("/evidence/:id", GetEvidence(mockSvc))

		mockSvc.On("Get", mock.Anything, "tenant-a", evidenceID).
			Return(nil, service.ErrEvidenceNotFound).Once()

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/evidence/"+evidenceID, nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockEvidenceService)
		app := fiber.New()
		app.Get("/evidence/:id", GetEvidence(mockSvc))

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/evidence/not-a-uuid", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDownloadEvidence(t *testing.T) {
	mockSvc := new(serviceMocks.MockEvidenceService)
	app := fiber.New()
	app.Get("/evidence/:id/download", DownloadEvidence(mockSvc))

	mockSvc.On("DownloadURL", mock.Anything, "tenant-a", "ev-1").
		Return("https://minio.local/signed", nil).Once()

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/evidence/ev-1/download", nil))
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "https://minio.local/signed", body["url"])
}
