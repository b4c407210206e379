package handler

import (
	"context"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"certapi/internal/service"
)

// RegisterLiveNotes attaches the websocket endpoint assessors use to stream
// notes during practice observations. Each text frame becomes one appended
// note plus one audit entry; the coverage ledger is never touched here.
//
// Identity arrives as query parameters (tenant, assessor), pre-authenticated
// by the upstream gateway like the HTTP headers are.
func RegisterLiveNotes(app *fiber.App, svc service.AssessmentService) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/assessor/live/:candidateId", websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		tenantID := conn.Query("tenant")
		assessorID := conn.Query("assessor")
		candidateID := conn.Params("candidateId")
		if tenantID == "" || assessorID == "" {
			_ = conn.WriteJSON(fiber.Map{"status": "error", "code": "IDENTITY_REQUIRED"})
			return
		}

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			note, err := svc.AppendLiveNote(context.Background(), tenantID, candidateID, assessorID, string(msg))
			if err != nil {
				_ = conn.WriteJSON(fiber.Map{"status": "error", "code": wsErrorCode(err)})
				// Validation failures end the session; an empty note does not.
				if errors.Is(err, service.ErrNoteRequired) {
					continue
				}
				return
			}

			if err := conn.WriteJSON(fiber.Map{"status": "ok", "note": note}); err != nil {
				return
			}
		}
	}))
}

func wsErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrCandidateNotFound):
		return "CANDIDATE_NOT_FOUND"
	case errors.Is(err, service.ErrCrossTenantAccess):
		return "CROSS_TENANT_ACCESS_DENIED"
	case errors.Is(err, service.ErrNoteRequired):
		return "NOTE_REQUIRED"
	default:
		return "INTERNAL_ERROR"
	}
}
