package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/payment"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
)

// OrderHandler handles /order lookups and the payment gateway callbacks.
type OrderHandler struct {
	orders    *service.OrderService
	codec     *payment.Codec
	clientURL string
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService, codec *payment.Codec, clientURL string) *OrderHandler {
	return &OrderHandler{orders: orders, codec: codec, clientURL: clientURL}
}

// HandleGet handles GET /api/v1/order/{orderNo}. Orders are only visible to
// the user that placed them.
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	orderNo := chi.URLParam(r, "orderNo")
	if orderNo == "" {
		response.Error(w, apperr.InvalidID("Invalid param: orderNo"))
		return
	}

	order, err := h.orders.Get(r.Context(), identity.ID, orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.Error(w, apperr.ResourceNotFound("Order not found"))
			return
		}
		log.Err(err).Msg("Failed to get order")
		response.Error(w, apperr.System("Failed to get order"))
		return
	}

	response.OK(w, "", order)
}

// HandleNotify handles POST /api/v1/payment/notify, the server-to-server
// settlement callback from the gateway.
func (h *OrderHandler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, apperr.IllegalPayload("Invalid request body"))
		return
	}

	tradeInfo := r.FormValue("TradeInfo")
	if !h.codec.VerifySha(tradeInfo, r.FormValue("TradeSha")) {
		log.Warn().Msg("Payment notify check hash mismatch")
		response.Error(w, apperr.IllegalPayload("Invalid trade data"))
		return
	}

	notify, err := h.codec.DecryptNotify(tradeInfo)
	if err != nil {
		log.Err(err).Msg("Failed to decrypt payment notify")
		response.Error(w, apperr.IllegalPayload("Invalid trade data"))
		return
	}

	if notify.Status != "SUCCESS" {
		log.Warn().
			Str("status", notify.Status).
			Str("orderNo", notify.Result.MerchantOrderNo).
			Msg("Payment notify reported failure")
		response.Error(w, apperr.System("Payment failed"))
		return
	}

	pay := model.Payment{
		Amount:        notify.Result.Amt,
		TransactionID: notify.Result.TradeNo,
		PaymentIP:     notify.Result.IP,
		EscrowBank:    notify.Result.EscrowBank,
		PaymentType:   notify.Result.PaymentType,
		Account5Code:  notify.Result.PayerAccount5Code,
		PayBankCode:   notify.Result.PayBankCode,
	}

	if err := h.orders.MarkPaid(r.Context(), notify.Result.MerchantOrderNo, pay); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.Error(w, apperr.ResourceNotFound("Order not found"))
			return
		}
		log.Err(err).Msg("Failed to settle order")
		response.Error(w, apperr.System("Failed to settle order"))
		return
	}

	response.OK(w, "", nil)
}

// HandleReturn handles POST /api/v1/payment/return, the browser redirect back
// from the gateway. It forwards the shopper to the client order page; this and
// the reset-password link are the only flows that bypass the JSON envelope.
func (h *OrderHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	orderNo := ""
	success := false

	if err := r.ParseForm(); err == nil {
		if notify, err := h.codec.DecryptNotify(r.FormValue("TradeInfo")); err == nil {
			orderNo = notify.Result.MerchantOrderNo
			success = notify.Status == "SUCCESS"
		} else {
			log.Err(err).Msg("Failed to decrypt payment return")
		}
	}

	target := h.clientURL + "/manageorder?" + url.Values{
		"orderNo": {orderNo},
		"success": {strconv.FormatBool(success)},
	}.Encode()

	http.Redirect(w, r, target, http.StatusFound)
}
