package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"certapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAuditPostgres_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditPostgres(db)
	ctx := context.Background()

	entry := &model.AuditEntry{
		ID:         "audit-1",
		TenantID:   "tenant-a",
		ActorID:    "user-1",
		Action:     model.ActionEvidenceUploaded,
		TargetType: "candidate",
		TargetID:   "cand-1",
		CreatedAt:  time.Now().UTC(),
	}

	t.Run("inserts one row", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO audit_log").
			WithArgs(entry.ID, entry.TenantID, entry.ActorID, entry.Action, entry.TargetType, entry.TargetID, entry.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Append(ctx, entry)

		assert.NoError(t, err)
	})

	t.Run("propagates db error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO audit_log").
			WillReturnError(errors.New("connection refused"))

		err := repo.Append(ctx, entry)

		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
