// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"cinema-pos/internal/adaptor"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/usecase"
	"cinema-pos/pkg/broker"
	"cinema-pos/pkg/middleware"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthCheck pings one backing store for GET /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// App holds the router and the services built for it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers and mounts every route
func Wiring(
	repo *repository.Repository,
	publisher broker.Publisher,
	checks []HealthCheck,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, checks, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	checks []HealthCheck,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	wireAuth(r, handler.Auth, repo, config, logger)
	wireMovie(r, handler.Movie, repo, config, logger)
	wireRoom(r, handler.Room, repo, config, logger)
	wireSnack(r, handler.Snack, repo, config, logger)
	wireSession(r, handler.Session, repo, config, logger)
	wireSale(r, handler.Sale, repo, config, logger)
	wireOrder(r, handler.Order, repo, config, logger)

	r.Get("/health", healthHandler(checks, logger))

	return r
}

func healthHandler(checks []HealthCheck, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		healthy := true
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logger.Error("Health check failed", zap.String("check", check.Name), zap.Error(err))
				status[check.Name] = "down"
				healthy = false
				continue
			}
			status[check.Name] = "up"
		}

		if !healthy {
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Service unavailable", status, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", status)
	}
}
