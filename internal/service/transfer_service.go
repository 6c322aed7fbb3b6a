package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"go.uber.org/zap"
)

// ExportBundle is the user-facing .json download/upload shape: the full
// purchase request collection plus the settings record.
type ExportBundle struct {
	PurchaseRequests []model.PurchaseRequest `json:"purchase_requests"`
	Settings         model.Settings          `json:"settings"`
	ExportedAt       time.Time               `json:"exported_at"`
}

// ImportSummary reports what an import replaced.
type ImportSummary struct {
	PurchaseRequests int `json:"purchase_requests"`
}

// TransferService round-trips the whole persisted state through a JSON blob.
// Import is all-or-nothing: a payload that fails to parse or validate leaves
// everything untouched.
type TransferService interface {
	Export(ctx context.Context) ExportBundle
	Import(ctx context.Context, blob []byte) (ImportSummary, error)
}

type transferService struct {
	repo     *repository.PurchaseRequestRepository
	settings SettingsService
	log      *zap.Logger
	now      func() time.Time
}

// TransferOption configures a transfer service.
type TransferOption func(*transferService)

// WithTransferClock overrides the time source for tests.
func WithTransferClock(now func() time.Time) TransferOption {
	return func(s *transferService) { s.now = now }
}

func NewTransferService(repo *repository.PurchaseRequestRepository, settings SettingsService, log *zap.Logger, opts ...TransferOption) TransferService {
	s := &transferService{repo: repo, settings: settings, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *transferService) Export(ctx context.Context) ExportBundle {
	return ExportBundle{
		PurchaseRequests: s.repo.List(),
		Settings:         s.settings.Get(ctx),
		ExportedAt:       s.now(),
	}
}

func (s *transferService) Import(ctx context.Context, blob []byte) (ImportSummary, error) {
	// Absent settings keys must fall back to defaults, so decode over them.
	bundle := ExportBundle{Settings: model.DefaultSettings()}
	if err := json.Unmarshal(blob, &bundle); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", model.ErrInvalidImport, err)
	}
	if bundle.PurchaseRequests == nil {
		return ImportSummary{}, fmt.Errorf("%w: purchase_requests missing", model.ErrInvalidImport)
	}

	seen := make(map[string]struct{}, len(bundle.PurchaseRequests))
	for i, pr := range bundle.PurchaseRequests {
		if pr.ID == "" || pr.PRNumber == "" {
			return ImportSummary{}, fmt.Errorf("%w: record %d has no id or pr number", model.ErrInvalidImport, i)
		}
		if !model.ValidStatus(pr.Status) {
			return ImportSummary{}, fmt.Errorf("%w: record %d has unknown status %q", model.ErrInvalidImport, i, pr.Status)
		}
		if _, dup := seen[pr.ID]; dup {
			return ImportSummary{}, fmt.Errorf("%w: duplicate id %q", model.ErrInvalidImport, pr.ID)
		}
		seen[pr.ID] = struct{}{}
	}

	// Validation passed: apply atomically from the caller's point of view.
	s.repo.ReplaceAll(bundle.PurchaseRequests)
	s.settings.Replace(ctx, bundle.Settings)

	s.log.Info("state imported", zap.Int("purchase_requests", len(bundle.PurchaseRequests)))
	return ImportSummary{PurchaseRequests: len(bundle.PurchaseRequests)}, nil
}
