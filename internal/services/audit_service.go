package services

import (
	"context"
	"encoding/json"

	"github.com/sjperalta/marketplace-admin-api/internal/jobs"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/repository"
	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
)

// Actor identifies the admin performing a write
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Record writes an audit entry in the background. Failures are logged only.
func (s *AuditService) Record(ctx context.Context, actor Actor, action, sellerID string, details interface{}) {
	if s == nil || s.repo == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		logger.Error("[AuditService] Failed to encode details", "action", action, "error", err)
		payload = []byte("{}")
	}

	entry := &models.AuditLog{
		UserID:    actor.UserID,
		Action:    action,
		Entity:    "Seller",
		EntityID:  sellerID,
		Details:   string(payload),
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}

	write := func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			logger.Error("[AuditService] Failed to write audit entry", "action", action, "seller_id", sellerID, "error", err)
			return err
		}
		return nil
	}

	if s.worker == nil {
		_ = write(ctx)
		return
	}
	s.worker.Enqueue(write)
}

// List retrieves audit logs, optionally restricted to one seller
func (s *AuditService) List(ctx context.Context, sellerID string, limit, offset int) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, sellerID, limit, offset)
}
