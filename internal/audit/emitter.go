package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"certapi/internal/config"
	"certapi/internal/model"
	"certapi/internal/repository"
)

// Emitter is an outbox-style audit writer: callers enqueue entries and return
// immediately, a background goroutine persists them with bounded retries.
// Audit is best-effort: a write failure is logged, never propagated, and
// never rolls back the mutation it describes.
type Emitter struct {
	repo        repository.AuditRepository
	queue       chan model.AuditEntry
	maxAttempts int
	log         *logrus.Entry

	wg        sync.WaitGroup
	closeOnce sync.Once
}

const (
	writeTimeout   = 5 * time.Second
	initialBackoff = 200 * time.Millisecond
)

// NewEmitter starts the background writer. Call Close to drain and stop it.
func NewEmitter(repo repository.AuditRepository, cfg config.AuditConfig) *Emitter {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	e := &Emitter{
		repo:        repo,
		queue:       make(chan model.AuditEntry, queueSize),
		maxAttempts: maxAttempts,
		log:         logrus.WithField("component", "audit_emitter"),
	}
	e.wg.Add(1)
	go e.run()
	return e
}

// Emit enqueues one audit entry. ID and CreatedAt are filled in when absent.
// Never blocks: if the queue is full the entry is dropped with an error log,
// since losing an audit record is less harmful than stalling evidence intake.
func (e *Emitter) Emit(entry model.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	select {
	case e.queue <- entry:
	default:
		e.log.WithFields(logrus.Fields{
			"action":    entry.Action,
			"target_id": entry.TargetID,
		}).Error("audit queue full, dropping entry")
	}
}

// Close drains the queue and stops the writer. Pending entries are persisted
// (or exhausted) before it returns, so a graceful shutdown loses nothing.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() {
		close(e.queue)
	})
	e.wg.Wait()
}

func (e *Emitter) run() {
	defer e.wg.Done()
	for entry := range e.queue {
		e.write(entry)
	}
}

// write retries with exponential backoff until the entry lands or attempts
// are exhausted.
func (e *Emitter) write(entry model.AuditEntry) {
	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(initialBackoff << uint(attempt-1))
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		lastErr = e.repo.Append(ctx, &entry)
		cancel()
		if lastErr == nil {
			return
		}

		e.log.WithError(lastErr).WithFields(logrus.Fields{
			"action":  entry.Action,
			"attempt": attempt + 1,
		}).Warn("audit write failed, retrying")
	}

	e.log.WithError(lastErr).WithFields(logrus.Fields{
		"action":    entry.Action,
		"tenant_id": entry.TenantID,
		"target_id": entry.TargetID,
	}).Error("audit write exhausted retries, entry lost")
}
