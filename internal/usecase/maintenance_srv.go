package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/broker"

	"go.uber.org/zap"
)

// MaintenanceService runs the periodic housekeeping jobs. Stock is
// decremented without a version check, so two sales of the last units can
// drive it below zero; the audit reports it and never corrects it.
type MaintenanceService interface {
	AuditNegativeStock(ctx context.Context) (int, error)
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type maintenanceService struct {
	repo      *repository.Repository
	publisher broker.Publisher
	now       func() time.Time
	log       *zap.Logger
}

func NewMaintenanceService(repo *repository.Repository, publisher broker.Publisher, log *zap.Logger) MaintenanceService {
	return &maintenanceService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		log:       log.With(zap.String("service", "maintenance")),
	}
}

func (s *maintenanceService) AuditNegativeStock(ctx context.Context) (int, error) {
	snacks, err := s.repo.Snack.FindNegativeStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("find negative stock: %w", err)
	}

	now := s.now()
	for _, snack := range snacks {
		s.log.Warn("Snack stock below zero",
			zap.String("snack_id", snack.ID.String()),
			zap.String("name", snack.Name),
			zap.Int("stock", snack.Stock))

		publish(ctx, s.publisher, s.log, broker.QueueStockReconciliation, StockReconciliationEvent{
			SnackID:       snack.ID,
			Name:          snack.Name,
			ExpectedStock: snack.Stock,
			Reason:        ReasonNegativeStock,
			DetectedAt:    now,
		})
	}

	return len(snacks), nil
}

func (s *maintenanceService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	purged, err := s.repo.Token.CleanExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	return purged, nil
}
