package postgres

import (
	"context"
	"database/sql"

	"certapi/internal/model"
	"certapi/internal/repository"
)

// AuditPostgres is a PostgreSQL implementation of repository.AuditRepository.
// The audit_log table is append-only; no update or delete statements exist.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

// Append inserts one audit entry.
func (r *AuditPostgres) Append(ctx context.Context, entry *model.AuditEntry) error {
	const q = `
		INSERT INTO audit_log (id, tenant_id, actor_id, action, target_type, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID,
		entry.TenantID,
		entry.ActorID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.CreatedAt,
	)
	return err
}
