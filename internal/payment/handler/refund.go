package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RefundRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	IsPartial bool            `json:"isPartial"`
}

// RefundHandler handles POST /admin/orders/{orderId}/refund.
func (h *Handler) RefundHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := utils.ParsePositiveInt(chi.URLParam(r, "orderId"))
	if !ok {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order for refund", zap.Int("order_id", orderID), zap.Error(err))
		utils.WriteJSONError(w, "failed to load order", http.StatusInternalServerError)
		return
	}
	if o == nil {
		utils.WriteJSONError(w, payment.ErrOrderNotFound.Error(), http.StatusNotFound)
		return
	}

	s, err := h.loadSettings(ctx)
	if err != nil {
		utils.WriteJSONError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	res, err := h.Refunder.Refund(ctx, o, req.Amount, req.IsPartial, s)
	if err != nil {
		utils.WriteJSON(w, refundStatus(err), res)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

func refundStatus(err error) int {
	switch {
	case errors.Is(err, payment.ErrInvalidRefundAmount):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrRefundNoEligibleTransaction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, payment.ErrProviderRequestFailed), errors.Is(err, payment.ErrMalformedPayload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
