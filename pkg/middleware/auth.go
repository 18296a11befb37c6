package middleware

import (
	"net/http"
	"strings"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the opaque bearer token issued at login.
func AuthSession(tokenRepo repository.TokenRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			token = strings.TrimSpace(token)

			authToken, err := tokenRepo.FindValid(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if authToken == nil {
				logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetOperatorContext(r.Context(), authToken.OperatorID, "")
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only active admin operators through. It must run after AuthSession.
func Admin(operatorRepo repository.OperatorRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID, ok := utils.GetOperatorIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			operator, err := operatorRepo.FindByID(r.Context(), operatorID)
			if err != nil {
				logger.Error("Admin check: failed to get operator",
					zap.Error(err), zap.String("operator_id", operatorID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if operator == nil || !operator.IsActive || operator.Role != entity.RoleAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("operator_id", operatorID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			ctx := utils.SetOperatorContext(r.Context(), operatorID, string(operator.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
