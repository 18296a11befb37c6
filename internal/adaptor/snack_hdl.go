package adaptor

import (
	"net/http"

	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/usecase"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SnackHandler struct {
	service usecase.SnackService
	log     *zap.Logger
}

func NewSnackHandler(service usecase.SnackService, log *zap.Logger) *SnackHandler {
	return &SnackHandler{
		service: service,
		log:     log.With(zap.String("handler", "snack")),
	}
}

func (h *SnackHandler) GetSnacks(w http.ResponseWriter, r *http.Request) {
	snacks, err := h.service.GetSnacks(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get snacks")
		return
	}

	utils.ResponseSuccess(w, "success", snacks)
}

func (h *SnackHandler) GetSnackByID(w http.ResponseWriter, r *http.Request) {
	snack, err := h.service.GetSnackByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get snack by ID")
		return
	}

	utils.ResponseSuccess(w, "Snack retrieved successfully", snack)
}

func (h *SnackHandler) CreateSnack(w http.ResponseWriter, r *http.Request) {
	var req request.SnackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snack, err := h.service.CreateSnack(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create snack")
		return
	}

	utils.ResponseCreated(w, "Snack created successfully", snack)
}

func (h *SnackHandler) UpdateSnack(w http.ResponseWriter, r *http.Request) {
	var req request.SnackUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snack, err := h.service.UpdateSnack(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update snack")
		return
	}

	utils.ResponseSuccess(w, "Snack updated successfully", snack)
}

func (h *SnackHandler) DeleteSnack(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSnack(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete snack")
		return
	}

	utils.ResponseSuccess(w, "Snack deleted successfully", nil)
}
