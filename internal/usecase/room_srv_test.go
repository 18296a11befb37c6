package usecase

import (
	"context"
	"errors"
	"fmt"
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

type RoomServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	rooms   *mocks.MockRoomRepo
	service RoomService
}

func (s *RoomServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.rooms = new(mocks.MockRoomRepo)
	s.service = NewRoomService(&repository.Repository{Room: s.rooms}, zap.NewNop())
}

func TestRoomServiceSuite(t *testing.T) {
	suite.Run(t, new(RoomServiceTestSuite))
}

func (s *RoomServiceTestSuite) TestCreateRoomValidation() {
	tests := []struct {
		name    string
		req     request.RoomRequest
		wantErr string
	}{
		{
			name:    "missing fields",
			req:     request.RoomRequest{},
			wantErr: "validation failed: Capacity: This field is required; Number: This field is required",
		},
		{
			name:    "negative number",
			req:     request.RoomRequest{Number: -1, Capacity: 40},
			wantErr: "validation failed: Number: Must be greater than 0",
		},
		{
			name:    "negative capacity",
			req:     request.RoomRequest{Number: 2, Capacity: -40},
			wantErr: "validation failed: Capacity: Must be greater than 0",
		},
		{
			name:    "capacity above limit",
			req:     request.RoomRequest{Number: 2, Capacity: 1001},
			wantErr: "validation failed: Capacity: Maximum value is 1000",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.service.CreateRoom(s.ctx, &tt.req)

			s.Nil(resp)
			s.EqualError(err, tt.wantErr)
		})
	}
	s.rooms.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *RoomServiceTestSuite) TestCreateRoom() {
	s.rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Room) bool {
		return r.Number == 4 && r.Capacity == 60 && r.ID != uuid.Nil
	})).Return(nil).Once()

	resp, err := s.service.CreateRoom(s.ctx, &request.RoomRequest{Number: 4, Capacity: 60})

	s.Require().NoError(err)
	s.Equal(4, resp.Number)
	s.Equal(60, resp.Capacity)
	s.rooms.AssertExpectations(s.T())
}

func (s *RoomServiceTestSuite) TestCreateDuplicateRoom() {
	s.rooms.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("room 4: %w", repository.ErrDuplicateRoom)).Once()

	_, err := s.service.CreateRoom(s.ctx, &request.RoomRequest{Number: 4, Capacity: 60})

	s.EqualError(err, "room 4 already exists")
}

func (s *RoomServiceTestSuite) TestUpdateRoom() {
	room := &entity.Room{Base: entity.Base{ID: uuid.New()}, Number: 1, Capacity: 20}
	s.rooms.On("FindByID", mock.Anything, room.ID).Return(room, nil)
	s.rooms.On("Update", mock.Anything, room).Return(nil).Once()

	resp, err := s.service.UpdateRoom(s.ctx, room.ID.String(), &request.RoomRequest{Number: 1, Capacity: 35})

	s.Require().NoError(err)
	s.Equal(35, resp.Capacity)
	s.False(room.UpdatedAt.IsZero())

	_, err = s.service.UpdateRoom(s.ctx, room.ID.String(), &request.RoomRequest{Number: 1, Capacity: 0})
	s.ErrorContains(err, "validation failed")
	s.rooms.AssertNumberOfCalls(s.T(), "Update", 1)
}

func (s *RoomServiceTestSuite) TestFindRoomErrors() {
	missing := uuid.New()
	s.rooms.On("FindByID", mock.Anything, missing).Return(nil, nil)

	_, err := s.service.GetRoomByID(s.ctx, missing.String())
	s.EqualError(err, "room not found")

	_, err = s.service.GetRoomByID(s.ctx, "room-1")
	s.ErrorContains(err, "invalid room id")

	broken := uuid.New()
	s.rooms.On("FindByID", mock.Anything, broken).Return(nil, errors.New("conn closed"))
	err = s.service.DeleteRoom(s.ctx, broken.String())
	s.EqualError(err, "get room by id: conn closed")
	s.rooms.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *RoomServiceTestSuite) TestGetRooms() {
	s.rooms.On("FindAll", mock.Anything).Return([]*entity.Room{
		{Base: entity.Base{ID: uuid.New()}, Number: 1, Capacity: 20},
		{Base: entity.Base{ID: uuid.New()}, Number: 2, Capacity: 45},
	}, nil).Once()

	resp, err := s.service.GetRooms(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(resp, 2)
	s.Equal(45, resp[1].Capacity)
}
