package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/sale"
	"cinema-pos/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps a service error onto the response envelope.
// Typed sale and repository errors are matched first, the rest by message.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var stockErr *sale.InsufficientStockError
	var persistErr *sale.OrderPersistError

	switch {
	case errors.As(err, &stockErr):
		log.Info(operation+" rejected - insufficient stock", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), stockErr)

	case errors.Is(err, sale.ErrSeatUnavailable):
		log.Info(operation+" rejected - seat unavailable", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.As(err, &persistErr):
		log.Error(operation+" failed - order not saved", zap.Error(err))
		utils.ResponseBadGateway(w, "Order could not be saved, the sale is unchanged and can be retried")

	case errors.Is(err, sale.ErrTicketNotFound),
		errors.Is(err, sale.ErrSnackLineNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, sale.ErrSeatOutOfRange),
		errors.Is(err, sale.ErrInvalidQuantity),
		errors.Is(err, sale.ErrInvalidFareTier),
		errors.Is(err, sale.ErrNegativePrice),
		errors.Is(err, sale.ErrPricePrecision),
		errors.Is(err, sale.ErrEmptyCart):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrReferencedRecord),
		errors.Is(err, repository.ErrDuplicateRoom),
		errors.Is(err, repository.ErrDuplicateUser):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	default:
		handleMessageError(w, log, err, operation)
	}
}

func handleMessageError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "deactivated"):
		log.Warn(operation+" failed - account deactivated", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already exists"):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseConflict(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate decodes the JSON body into req and runs the struct
// validator. It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}
