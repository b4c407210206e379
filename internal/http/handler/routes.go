package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"certapi/internal/service"
)

// Actor identity headers, populated by the upstream authentication gateway.
// Credential issuance and verification happen outside this service.
const (
	TenantHeader = "X-Tenant-ID"
	ActorHeader  = "X-Actor-ID"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, delegate to the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, evidenceSvc service.EvidenceService, assessmentSvc service.AssessmentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/candidates/:id/evidence", IngestEvidence(evidenceSvc))
	app.Get("/candidates/:id/evidence", ListCandidateEvidence(evidenceSvc))
	app.Get("/candidates/:id/coverage", GetCoverage(evidenceSvc))
	app.Post("/candidates/:id/notes", AppendLiveNote(assessmentSvc))

	app.Get("/evidence/:id", GetEvidence(evidenceSvc))
	app.Get("/evidence/:id/download", DownloadEvidence(evidenceSvc))
}

// HealthCheck verifies DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// IngestEvidence accepts one evidence upload (multipart/form-data) and runs
// the intake pipeline.
//
// Form fields: description, text, indicator_hints (JSON array or single id),
// file (optional). Identity comes from the gateway headers.
func IngestEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, actorID, ok := identity(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "tenant and actor headers are required")
		}
		candidateID := c.Params("id")
		if _, err := uuid.Parse(candidateID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid candidate id format")
		}

		in := service.IngestInput{
			TenantID:    tenantID,
			CandidateID: candidateID,
			UploaderID:  actorID,
			Description: c.FormValue("description"),
			Text:        c.FormValue("text"),
			Hints:       parseHints(c.FormValue("indicator_hints")),
		}

		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			media := make([]byte, fh.Size)
			if _, err := io.ReadFull(f, media); err != nil {
				f.Close()
				return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
			}
			f.Close()

			in.Media = media
			in.Filename = fh.Filename
			in.DeclaredContentType = fh.Header.Get("Content-Type")
			if in.DeclaredContentType == "" {
				in.DeclaredContentType = "application/octet-stream"
			}
		}

		res, err := svc.Ingest(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListCandidateEvidence returns all evidence for a candidate.
func ListCandidateEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, _, ok := identity(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "tenant and actor headers are required")
		}
		items, err := svc.ListByCandidate(c.UserContext(), tenantID, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items, "total": len(items)})
	}
}

// GetCoverage returns the candidate's indicator-coverage ledger.
func GetCoverage(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, _, ok := identity(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "tenant and actor headers are required")
		}
		report, err := svc.Coverage(c.UserContext(), tenantID, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}

// AppendLiveNote appends one assessor note via plain HTTP; the websocket
// endpoint in ws.go serves the live session flow.
func AppendLiveNote(svc service.AssessmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, actorID, ok := identity(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "tenant and actor headers are required")
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		note, err := svc.AppendLiveNote(c.UserContext(), tenantID, c.Params("id"), actorID, body.Text)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "ok", "note": note})
	}
}

// GetEvidence returns a single evidence item.
func GetEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, _, ok := identity(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "tenant and actor headers are required")
		}
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		item, err := svc.Get(c.UserContext(), tenantID, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// DownloadEvidence returns a presigned URL for the stored artifact bytes.
func DownloadEvidence(svc service.EvidenceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, _, ok := identity(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "IDENTITY_REQUIRED", "tenant and actor headers are required")
		}
		url, err := svc.DownloadURL(c.UserContext(), tenantID, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

func identity(c *fiber.Ctx) (tenantID, actorID string, ok bool) {
	tenantID = c.Get(TenantHeader)
	actorID = c.Get(ActorHeader)
	return tenantID, actorID, tenantID != "" && actorID != ""
}

// parseHints accepts either a JSON array of indicator ids or a single bare id.
func parseHints(raw string) []string {
	if raw == "" {
		return nil
	}
	var hints []string
	if err := json.Unmarshal([]byte(raw), &hints); err != nil {
		return []string{raw}
	}
	return hints
}

// writeServiceError maps service sentinel errors onto the error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCandidateNotFound):
		return writeError(c, fiber.StatusNotFound, "CANDIDATE_NOT_FOUND", "candidate not found")
	case errors.Is(err, service.ErrEvidenceNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "evidence not found")
	case errors.Is(err, service.ErrCrossTenantAccess):
		return writeError(c, fiber.StatusForbidden, "CROSS_TENANT_ACCESS_DENIED", "cross-tenant access denied")
	case errors.Is(err, service.ErrContentRequired):
		return writeError(c, fiber.StatusBadRequest, "CONTENT_REQUIRED", "either media or text/description is required")
	case errors.Is(err, service.ErrNoteRequired):
		return writeError(c, fiber.StatusBadRequest, "NOTE_REQUIRED", "note text is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
