package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/dto/response"
	"cinema-pos/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SnackService interface {
	GetSnacks(ctx context.Context) ([]response.SnackResponse, error)
	GetSnackByID(ctx context.Context, snackID string) (*response.SnackResponse, error)
	CreateSnack(ctx context.Context, req *request.SnackRequest) (*response.SnackResponse, error)
	UpdateSnack(ctx context.Context, snackID string, req *request.SnackUpdateRequest) (*response.SnackResponse, error)
	DeleteSnack(ctx context.Context, snackID string) error
}

type snackService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSnackService(repo *repository.Repository, log *zap.Logger) SnackService {
	return &snackService{
		repo: repo,
		log:  log.With(zap.String("service", "snack")),
	}
}

func (s *snackService) GetSnacks(ctx context.Context) ([]response.SnackResponse, error) {
	snacks, err := s.repo.Snack.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get snacks: %w", err)
	}

	resp := make([]response.SnackResponse, len(snacks))
	for i, snack := range snacks {
		resp[i] = response.SnackToResponse(snack)
	}
	return resp, nil
}

func (s *snackService) GetSnackByID(ctx context.Context, snackID string) (*response.SnackResponse, error) {
	snack, err := s.findSnack(ctx, snackID)
	if err != nil {
		return nil, err
	}

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *snackService) CreateSnack(ctx context.Context, req *request.SnackRequest) (*response.SnackResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create snack validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	snack := &entity.SnackItem{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
	}

	if err := s.repo.Snack.Create(ctx, snack); err != nil {
		return nil, fmt.Errorf("create snack: %w", err)
	}

	s.log.Info("Snack created",
		zap.String("snack_id", snack.ID.String()),
		zap.String("name", snack.Name),
		zap.Int("stock", snack.Stock),
	)

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *snackService) UpdateSnack(ctx context.Context, snackID string, req *request.SnackUpdateRequest) (*response.SnackResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	snack, err := s.findSnack(ctx, snackID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		snack.Name = *req.Name
	}
	if req.Description != nil {
		snack.Description = *req.Description
	}
	if req.UnitPrice != nil {
		snack.UnitPrice = *req.UnitPrice
	}
	if req.Stock != nil {
		snack.Stock = *req.Stock
	}
	snack.UpdatedAt = time.Now()

	if err := s.repo.Snack.Update(ctx, snack); err != nil {
		return nil, fmt.Errorf("update snack: %w", err)
	}

	s.log.Info("Snack updated", zap.String("snack_id", snackID), zap.Int("stock", snack.Stock))

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *snackService) DeleteSnack(ctx context.Context, snackID string) error {
	snack, err := s.findSnack(ctx, snackID)
	if err != nil {
		return err
	}

	if err := s.repo.Snack.Delete(ctx, snack.ID); err != nil {
		return fmt.Errorf("delete snack: %w", err)
	}

	s.log.Info("Snack deleted", zap.String("snack_id", snackID), zap.String("name", snack.Name))
	return nil
}

func (s *snackService) findSnack(ctx context.Context, snackID string) (*entity.SnackItem, error) {
	id, err := uuid.Parse(snackID)
	if err != nil {
		return nil, fmt.Errorf("invalid snack id: %w", err)
	}

	snack, err := s.repo.Snack.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get snack by id: %w", err)
	}
	if snack == nil {
		return nil, fmt.Errorf("snack not found")
	}
	return snack, nil
}
