package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/getsentry/sentry-go"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/sjperalta/marketplace-admin-api/internal/repository"
	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
)

var sellerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSellerID rejects identifiers that cannot name a seller
func ValidateSellerID(sellerID string) error {
	if !sellerIDPattern.MatchString(sellerID) {
		return fmt.Errorf("%w: %q", ErrInvalidSellerID, sellerID)
	}
	return nil
}

// FakeStatsService owns the admin configured stat overrides
type FakeStatsService struct {
	repo     repository.FakeStatsRepository
	auditSvc *AuditService
}

func NewFakeStatsService(repo repository.FakeStatsRepository, auditSvc *AuditService) *FakeStatsService {
	return &FakeStatsService{repo: repo, auditSvc: auditSvc}
}

// Get returns every override record for the seller. No records is not an error.
func (s *FakeStatsService) Get(ctx context.Context, sellerID string) ([]models.OverrideRecord, error) {
	if err := ValidateSellerID(sellerID); err != nil {
		return nil, err
	}

	records, err := s.repo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, storageError("load overrides", err)
	}
	if records == nil {
		records = []models.OverrideRecord{}
	}
	return records, nil
}

// ValidateFields checks every submitted field and returns all violations
func (s *FakeStatsService) ValidateFields(fields map[string]float64) (models.StatValues, []models.FieldError) {
	values := make(models.StatValues, len(fields))
	var fieldErrs []models.FieldError

	for name, v := range fields {
		f, err := models.ParseStatField(name)
		if err != nil {
			fieldErrs = append(fieldErrs, models.FieldError{Field: models.StatField(name), Message: "unknown field"})
			continue
		}
		if fe := f.Validate(v); fe != nil {
			fieldErrs = append(fieldErrs, *fe)
			continue
		}
		values[f] = v
	}

	sortFieldErrors(fieldErrs)
	return values, fieldErrs
}

// Upsert merges fields into the (sellerID, timeframe) record, creating it if needed.
// Any invalid field rejects the whole write.
func (s *FakeStatsService) Upsert(ctx context.Context, actor Actor, sellerID string, timeframe models.Timeframe, fields map[string]float64) (*models.OverrideRecord, error) {
	if err := ValidateSellerID(sellerID); err != nil {
		return nil, err
	}
	if _, err := models.ParseTimeframe(string(timeframe)); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrEmptyOverride
	}

	values, fieldErrs := s.ValidateFields(fields)
	if len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs)
	}

	record, err := s.repo.Merge(ctx, sellerID, timeframe, values, actor.UserID)
	if err != nil {
		return nil, storageError("save overrides", err)
	}

	logger.Info("[FakeStatsService] Overrides saved",
		"seller_id", sellerID,
		"timeframe", timeframe,
		"fields", len(values),
		"admin_id", actor.UserID,
	)
	s.auditSvc.Record(ctx, actor, models.AuditActionFakeStatsUpsert, sellerID, map[string]interface{}{
		"timeframe": timeframe,
		"stats":     values,
	})

	return record, nil
}

// Reset removes every override for the seller in one statement. Idempotent.
func (s *FakeStatsService) Reset(ctx context.Context, actor Actor, sellerID string) error {
	if err := ValidateSellerID(sellerID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteBySeller(ctx, sellerID)
	if err != nil {
		return storageError("reset overrides", err)
	}

	logger.Info("[FakeStatsService] Overrides reset", "seller_id", sellerID, "records", deleted, "admin_id", actor.UserID)
	if deleted > 0 {
		s.auditSvc.Record(ctx, actor, models.AuditActionFakeStatsReset, sellerID, map[string]interface{}{
			"records": deleted,
		})
	}
	return nil
}

func storageError(op string, err error) error {
	sentry.CaptureException(err)
	logger.Error("[FakeStatsService] Storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

func sortFieldErrors(errs []models.FieldError) {
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Field < errs[j].Field
	})
}
