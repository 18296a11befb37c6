package usecase

import (
	"context"
	"testing"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type SnackServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	snacks  *mocks.MockSnackRepo
	service SnackService
}

func (s *SnackServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.snacks = new(mocks.MockSnackRepo)
	s.service = NewSnackService(&repository.Repository{Snack: s.snacks}, zap.NewNop())
}

func TestSnackServiceSuite(t *testing.T) {
	suite.Run(t, new(SnackServiceTestSuite))
}

func (s *SnackServiceTestSuite) TestCreateSnackValidation() {
	valid := func() request.SnackRequest {
		return request.SnackRequest{Name: "Nachos", Description: "Cheese nachos", UnitPrice: dec("6.50"), Stock: 10}
	}

	tests := []struct {
		name    string
		edit    func(r *request.SnackRequest)
		wantErr string
	}{
		{
			name:    "zero price",
			edit:    func(r *request.SnackRequest) { r.UnitPrice = dec("0") },
			wantErr: "validation failed: UnitPrice: Must be a positive amount",
		},
		{
			name:    "negative price",
			edit:    func(r *request.SnackRequest) { r.UnitPrice = dec("-2") },
			wantErr: "validation failed: UnitPrice: Must be a positive amount",
		},
		{
			name:    "sub-cent price",
			edit:    func(r *request.SnackRequest) { r.UnitPrice = dec("2.999") },
			wantErr: "validation failed: UnitPrice: Must have at most two decimal places",
		},
		{
			name:    "negative stock",
			edit:    func(r *request.SnackRequest) { r.Stock = -1 },
			wantErr: "validation failed: Stock: Must be at least 0",
		},
		{
			name:    "short name",
			edit:    func(r *request.SnackRequest) { r.Name = "Po" },
			wantErr: "validation failed: Name: Minimum length is 3",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := valid()
			tt.edit(&req)

			resp, err := s.service.CreateSnack(s.ctx, &req)

			s.Nil(resp)
			s.EqualError(err, tt.wantErr)
		})
	}
	s.snacks.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *SnackServiceTestSuite) TestCreateSnackWithZeroStock() {
	s.snacks.On("Create", mock.Anything, mock.MatchedBy(func(item *entity.SnackItem) bool {
		return item.Name == "Nachos" && item.Stock == 0 && item.UnitPrice.Equal(dec("6.5"))
	})).Return(nil).Once()

	resp, err := s.service.CreateSnack(s.ctx, &request.SnackRequest{
		Name: "Nachos", Description: "Cheese nachos", UnitPrice: dec("6.50"),
	})

	s.Require().NoError(err)
	s.Equal("6.50", resp.UnitPrice)
	s.Equal(0, resp.Stock)
	s.snacks.AssertExpectations(s.T())
}

func (s *SnackServiceTestSuite) TestUpdateSnack() {
	item := &entity.SnackItem{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "Soda",
		Description: "Cola 500ml",
		UnitPrice:   dec("5.00"),
		Stock:       12,
	}
	s.snacks.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	s.snacks.On("Update", mock.Anything, item).Return(nil).Once()

	stock := 30
	resp, err := s.service.UpdateSnack(s.ctx, item.ID.String(), &request.SnackUpdateRequest{Stock: &stock})

	s.Require().NoError(err)
	s.Equal(30, resp.Stock)
	s.Equal("5.00", resp.UnitPrice)
	s.Equal("Soda", resp.Name)

	negative := -3
	_, err = s.service.UpdateSnack(s.ctx, item.ID.String(), &request.SnackUpdateRequest{Stock: &negative})
	s.EqualError(err, "validation failed: Stock: Must be at least 0")

	_, err = s.service.UpdateSnack(s.ctx, item.ID.String(), &request.SnackUpdateRequest{UnitPrice: decPtr("0")})
	s.EqualError(err, "validation failed: UnitPrice: Must be a positive amount")
	s.snacks.AssertNumberOfCalls(s.T(), "Update", 1)
}

func (s *SnackServiceTestSuite) TestDeleteSnack() {
	item := &entity.SnackItem{Base: entity.Base{ID: uuid.New()}, Name: "Candy"}
	s.snacks.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	s.snacks.On("Delete", mock.Anything, item.ID).Return(nil).Once()

	s.Require().NoError(s.service.DeleteSnack(s.ctx, item.ID.String()))

	missing := uuid.New()
	s.snacks.On("FindByID", mock.Anything, missing).Return(nil, nil)
	s.EqualError(s.service.DeleteSnack(s.ctx, missing.String()), "snack not found")
	s.snacks.AssertExpectations(s.T())
}
