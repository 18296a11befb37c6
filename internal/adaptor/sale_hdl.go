package adaptor

import (
	"net/http"
	"strconv"

	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/usecase"
	"cinema-pos/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SaleHandler struct {
	service usecase.SaleService
	log     *zap.Logger
}

func NewSaleHandler(service usecase.SaleService, log *zap.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		log:     log.With(zap.String("handler", "sale")),
	}
}

// OpenSale handles POST /api/sales
func (h *SaleHandler) OpenSale(w http.ResponseWriter, r *http.Request) {
	var req request.OpenSaleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sale, err := h.service.OpenSale(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "open sale")
		return
	}

	utils.ResponseCreated(w, "Sale opened", sale)
}

// GetSale handles GET /api/sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get sale")
		return
	}

	utils.ResponseSuccess(w, "success", sale)
}

// ToggleSeat handles POST /api/sales/{id}/seats
func (h *SaleHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	var req request.SeatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sale, err := h.service.ToggleSeat(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle seat")
		return
	}

	utils.ResponseSuccess(w, "Seat selection updated", sale)
}

// ChangeFareTier handles PATCH /api/sales/{id}/tickets
func (h *SaleHandler) ChangeFareTier(w http.ResponseWriter, r *http.Request) {
	var req request.FareTierRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sale, err := h.service.ChangeFareTier(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "change fare tier")
		return
	}

	utils.ResponseSuccess(w, "Fare tier updated", sale)
}

// RemoveTicket handles DELETE /api/sales/{id}/tickets?row=&column=
func (h *SaleHandler) RemoveTicket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SeatRequest{
		Row:    utils.ParseInt(query.Get("row"), 0),
		Column: utils.ParseInt(query.Get("column"), 0),
	}

	sale, err := h.service.RemoveTicket(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, h.log, err, "remove ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket removed", sale)
}

// AddSnack handles POST /api/sales/{id}/snacks
func (h *SaleHandler) AddSnack(w http.ResponseWriter, r *http.Request) {
	var req request.AddSnackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sale, err := h.service.AddSnack(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add snack")
		return
	}

	utils.ResponseSuccess(w, "Snack added", sale)
}

// RemoveSnack handles DELETE /api/sales/{id}/snacks/{index}
func (h *SaleHandler) RemoveSnack(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.ResponseBadRequest(w, "Snack line index must be a number", nil)
		return
	}

	sale, err := h.service.RemoveSnack(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		handleServiceError(w, h.log, err, "remove snack")
		return
	}

	utils.ResponseSuccess(w, "Snack removed", sale)
}

// SetPricing handles PUT /api/sales/{id}/pricing
func (h *SaleHandler) SetPricing(w http.ResponseWriter, r *http.Request) {
	var req request.PricingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sale, err := h.service.SetPricing(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set pricing")
		return
	}

	utils.ResponseSuccess(w, "Pricing updated", sale)
}

// Checkout handles POST /api/sales/{id}/checkout
func (h *SaleHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Checkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "checkout")
		return
	}

	if result.StockSync != nil {
		h.log.Warn("Order saved with stock sync failures",
			zap.String("order_id", result.Order.ID),
			zap.Int("failed_lines", len(result.StockSync.Failures)))
		utils.ResponseCreated(w, "Order saved, snack stock needs manual reconciliation", result)
		return
	}

	utils.ResponseCreated(w, "Order saved", result)
}

// CancelSale handles DELETE /api/sales/{id}
func (h *SaleHandler) CancelSale(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelSale(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "cancel sale")
		return
	}

	utils.ResponseSuccess(w, "Sale cancelled", nil)
}
