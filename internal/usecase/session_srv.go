package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/dto/response"
	"cinema-pos/internal/sale"
	"cinema-pos/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionService interface {
	GetSessions(ctx context.Context, expand map[string]bool) ([]response.SessionResponse, error)
	GetSessionByID(ctx context.Context, sessionID string) (*response.SessionResponse, error)
	GetSeatMap(ctx context.Context, sessionID string) (*response.SeatMapResponse, error)
	CreateSession(ctx context.Context, req *request.CreateSessionRequest) (*response.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type sessionService struct {
	repo    *repository.Repository
	catalog *catalogAccessor
	loc     *time.Location
	now     func() time.Time
	log     *zap.Logger
}

// NewSessionService reads screening dates as calendar days in loc, UTC when nil.
func NewSessionService(repo *repository.Repository, loc *time.Location, log *zap.Logger) SessionService {
	if loc == nil {
		loc = time.UTC
	}
	return &sessionService{
		repo:    repo,
		catalog: newCatalogAccessor(repo, log),
		loc:     loc,
		now:     time.Now,
		log:     log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) GetSessions(ctx context.Context, expand map[string]bool) ([]response.SessionResponse, error) {
	sessions, err := s.repo.Session.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	// one lookup per distinct movie or room
	movies := map[uuid.UUID]*entity.Movie{}
	rooms := map[uuid.UUID]*entity.Room{}

	resp := make([]response.SessionResponse, len(sessions))
	for i, session := range sessions {
		if expand["movie"] {
			movie, ok := movies[session.MovieID]
			if !ok {
				if movie, err = s.repo.Movie.FindByID(ctx, session.MovieID); err != nil {
					return nil, fmt.Errorf("expand movie: %w", err)
				}
				movies[session.MovieID] = movie
			}
			session.Movie = movie
		}
		if expand["room"] {
			room, ok := rooms[session.RoomID]
			if !ok {
				if room, err = s.repo.Room.FindByID(ctx, session.RoomID); err != nil {
					return nil, fmt.Errorf("expand room: %w", err)
				}
				rooms[session.RoomID] = room
			}
			session.Room = room
		}
		resp[i] = response.SessionToResponse(session)
	}

	return resp, nil
}

func (s *sessionService) GetSessionByID(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	session, room, err := s.findSessionWithRoom(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, session.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	session.Movie = movie
	session.Room = room

	resp := response.SessionToResponse(session)
	return &resp, nil
}

func (s *sessionService) GetSeatMap(ctx context.Context, sessionID string) (*response.SeatMapResponse, error) {
	session, room, err := s.findSessionWithRoom(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	occ, err := s.catalog.occupancy(ctx, session.ID)
	if err != nil {
		s.log.Error("Failed to resolve occupancy", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("resolve occupancy: %w", err)
	}

	var rows [][]response.SeatStatus
	for _, seat := range sale.SeatsFor(room.Capacity) {
		if seat.Column == 1 {
			rows = append(rows, []response.SeatStatus{})
		}
		last := len(rows) - 1
		rows[last] = append(rows[last], response.SeatStatus{
			Row:      seat.Row,
			Column:   seat.Column,
			Occupied: occ.Has(seat),
		})
	}
	if rows == nil {
		rows = [][]response.SeatStatus{}
	}

	return &response.SeatMapResponse{
		SessionID: session.ID.String(),
		Capacity:  room.Capacity,
		Occupied:  occ.Len(),
		Remaining: sale.RemainingCapacity(room.Capacity, occ),
		Rows:      rows,
	}, nil
}

func (s *sessionService) CreateSession(ctx context.Context, req *request.CreateSessionRequest) (*response.SessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room id: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}

	if req.StartsAt.Before(s.now()) {
		return nil, fmt.Errorf("invalid session time: %s is in the past", req.StartsAt.Format(time.RFC3339))
	}
	if !movie.ShowsAt(req.StartsAt, s.loc) {
		return nil, fmt.Errorf("invalid session time: %s is outside the screening window %s to %s",
			req.StartsAt.Format(time.RFC3339),
			movie.ScreeningStart.Format(dateLayout),
			movie.ScreeningEnd.Format(dateLayout))
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:  movie.ID,
		RoomID:   room.ID,
		StartsAt: req.StartsAt,
		Movie:    movie,
		Room:     room,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("Session scheduled",
		zap.String("session_id", session.ID.String()),
		zap.String("movie", movie.Title),
		zap.Int("room", room.Number),
		zap.Time("starts_at", session.StartsAt),
	)

	resp := response.SessionToResponse(session)
	return &resp, nil
}

// DeleteSession cancels a screening. Orders already sold for it are kept.
func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found")
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.log.Info("Session deleted", zap.String("session_id", sessionID))
	return nil
}

func (s *sessionService) findSessionWithRoom(ctx context.Context, sessionID string) (*entity.Session, *entity.Room, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid session id: %w", err)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil, fmt.Errorf("session not found")
	}

	room, err := s.repo.Room.FindByID(ctx, session.RoomID)
	if err != nil {
		return nil, nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, nil, fmt.Errorf("room not found")
	}

	return session, room, nil
}
