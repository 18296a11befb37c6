package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

func TestParseScreeningWindow(t *testing.T) {
	start, end, err := parseScreeningWindow("2026-03-01", "2026-03-01")
	require.NoError(t, err)
	assert.True(t, start.Equal(end))

	_, _, err = parseScreeningWindow("2026-03-10", "2026-03-01")
	assert.ErrorContains(t, err, "invalid screening window")

	_, _, err = parseScreeningWindow("03/10/2026", "2026-03-20")
	assert.ErrorContains(t, err, "invalid screening start")
}

type MovieServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	movies  *mocks.MockMovieRepo
	service MovieService
}

func (s *MovieServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.movies = new(mocks.MockMovieRepo)
	s.service = NewMovieService(&repository.Repository{Movie: s.movies}, zap.NewNop())
}

func TestMovieServiceSuite(t *testing.T) {
	suite.Run(t, new(MovieServiceTestSuite))
}

func validMovieRequest() request.MovieRequest {
	return request.MovieRequest{
		Title:           "Night Train",
		Synopsis:        "A conductor finds a passenger who never boarded.",
		DurationMinutes: 112,
		Rating:          "14",
		Genre:           "Thriller",
		ScreeningStart:  "2026-03-01",
		ScreeningEnd:    "2026-03-20",
	}
}

func (s *MovieServiceTestSuite) TestCreateMovieValidation() {
	tests := []struct {
		name    string
		edit    func(r *request.MovieRequest)
		wantErr string
	}{
		{
			name:    "missing title",
			edit:    func(r *request.MovieRequest) { r.Title = "" },
			wantErr: "validation failed: Title: This field is required",
		},
		{
			name:    "negative duration",
			edit:    func(r *request.MovieRequest) { r.DurationMinutes = -90 },
			wantErr: "validation failed: DurationMinutes: Must be greater than 0",
		},
		{
			name:    "bad date format",
			edit:    func(r *request.MovieRequest) { r.ScreeningEnd = "20/03/2026" },
			wantErr: "validation failed: ScreeningEnd: Must match the format 2006-01-02",
		},
		{
			name:    "end before start",
			edit:    func(r *request.MovieRequest) { r.ScreeningEnd = "2026-02-20" },
			wantErr: "invalid screening window: end 2026-02-20 is before start 2026-03-01",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := validMovieRequest()
			tt.edit(&req)

			resp, err := s.service.CreateMovie(s.ctx, &req)

			s.Nil(resp)
			s.EqualError(err, tt.wantErr)
		})
	}
	s.movies.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *MovieServiceTestSuite) TestCreateMovie() {
	s.movies.On("Create", mock.Anything, mock.MatchedBy(func(m *entity.Movie) bool {
		return m.Title == "Night Train" &&
			m.ScreeningStart.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			m.ScreeningEnd.Equal(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	req := validMovieRequest()
	resp, err := s.service.CreateMovie(s.ctx, &req)

	s.Require().NoError(err)
	s.Equal("2026-03-01", resp.ScreeningStart)
	s.Equal("2026-03-20", resp.ScreeningEnd)
	s.movies.AssertExpectations(s.T())
}

func (s *MovieServiceTestSuite) TestUpdateMovieKeepsWindowConsistent() {
	movie := &entity.Movie{
		Base:           entity.Base{ID: uuid.New()},
		Title:          "Night Train",
		ScreeningStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ScreeningEnd:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	s.movies.On("FindByID", mock.Anything, movie.ID).Return(movie, nil)

	earlyEnd := "2026-02-15"
	_, err := s.service.UpdateMovie(s.ctx, movie.ID.String(), &request.MovieUpdateRequest{ScreeningEnd: &earlyEnd})
	s.ErrorContains(err, "invalid screening window")
	s.movies.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)

	s.movies.On("Update", mock.Anything, movie).Return(nil).Once()
	laterEnd := "2026-04-05"
	resp, err := s.service.UpdateMovie(s.ctx, movie.ID.String(), &request.MovieUpdateRequest{ScreeningEnd: &laterEnd})

	s.Require().NoError(err)
	s.Equal("2026-03-01", resp.ScreeningStart)
	s.Equal("2026-04-05", resp.ScreeningEnd)
}

func (s *MovieServiceTestSuite) TestDeleteUnknownMovie() {
	missing := uuid.New()
	s.movies.On("FindByID", mock.Anything, missing).Return(nil, nil)

	s.EqualError(s.service.DeleteMovie(s.ctx, missing.String()), "movie not found")
	s.movies.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}
