package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
	"github.com/noah-isme/campus-attendance-gateway/pkg/jobs"
)

type auditStore interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

const auditWriteTimeout = 5 * time.Second

// AuditService writes audit entries off the request path through a worker queue.
// A nil *AuditService records nothing, which is how auditing is switched off.
type AuditService struct {
	repo   auditStore
	queue  *jobs.Queue[models.AuditLog]
	logger *zap.Logger
}

// NewAuditService constructs an AuditService writing to repo.
func NewAuditService(repo auditStore, logger *zap.Logger, cfg jobs.QueueConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Logger = logger
	handler := func(ctx context.Context, job jobs.Job[models.AuditLog]) error {
		ctx, cancel := context.WithTimeout(ctx, auditWriteTimeout)
		defer cancel()
		entry := job.Payload
		if entry.ID == "" {
			entry.ID = job.ID
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = job.Enqueued
		}
		return repo.CreateAuditLog(ctx, &entry)
	}
	return &AuditService{repo: repo, queue: jobs.NewQueue("audit", handler, cfg), logger: logger}
}

// Start launches the writers.
func (s *AuditService) Start(ctx context.Context) {
	if s == nil {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains nothing further and waits for in-flight writes.
func (s *AuditService) Stop() {
	if s == nil {
		return
	}
	s.queue.Stop()
}

// Record queues an entry without waiting. A full or stopped queue drops the entry with a
// warning; failures never reach the request.
func (s *AuditService) Record(entry models.AuditLog) {
	if s == nil {
		return
	}
	if _, err := s.queue.Enqueue(entry); err != nil {
		s.logger.Warn("audit log dropped",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err))
	}
}

// Recent returns the newest audit entries. With auditing off there is nothing to show.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if s == nil {
		return []models.AuditLog{}, nil
	}
	logs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list audit logs", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load audit logs")
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}
