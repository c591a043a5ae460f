package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/checkout JSON {items, shipping_address_id, billing_address_id,
//      payment_method, user_id} (200 OK, 400 Bad request)
// GET  v1/checkout/callback?reference= (204 No content)
// GET  v1/orders (200 OK)
// GET  v1/orders/{orderID} (200 OK, 404 Not found)

type CheckoutHandler struct {
	checkout port.CheckoutPlacer
	orders   port.OrdersReader
}

func RegisterCheckout(
	mux *http.ServeMux, checkout port.CheckoutPlacer, orders port.OrdersReader,
) {
	h := CheckoutHandler{checkout, orders}
	mux.HandleFunc("POST /v1/checkout", h.PlaceOrder)
	mux.HandleFunc("GET /v1/checkout/callback", h.Callback)
	mux.HandleFunc("GET /v1/orders", requireUser(h.ListOrders))
	mux.HandleFunc("GET /v1/orders/{orderID}", requireUser(h.GetOrder))
}

func (h CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PlaceOrder"
	log := slog.With("op", op)

	var body CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid JSON data"})
		return
	}

	// the proxy-injected identity wins over the body field
	uid := userID(r)
	if uid == "" {
		uid = body.UserID
	}

	lines := make([]domain.CheckoutLine, len(body.Items))
	for i, item := range body.Items {
		lines[i] = domain.CheckoutLine{
			VariantID: item.Variant.ID,
			Quantity:  item.Quantity,
		}
	}

	placement, err := h.checkout.PlaceOrder(r.Context(), domain.CheckoutRequest{
		UserID:            uid,
		Lines:             lines,
		ShippingAddressID: body.ShippingAddressID,
		BillingAddressID:  body.BillingAddressID,
		PaymentMethod:     domain.PaymentMethod(body.PaymentMethod),
	})
	if err != nil {
		h.writeCheckoutErr(w, log, err)
		return
	}

	log.Info("order placed", "user", uid, "orderID", placement.OrderID)
	writeJSON(w, log, http.StatusOK, CheckoutResponse{
		OrderID: placement.OrderID,
		URL:     placement.RedirectURL,
	})
}

// writeCheckoutErr: the checkout contract answers 400 with an error
// string on any failure; details stay in the log.
func (h CheckoutHandler) writeCheckoutErr(
	w http.ResponseWriter, log *slog.Logger, err error,
) {
	msg := "failed to place order"
	switch {
	case errors.Is(err, domain.ErrVariantNotFound):
		msg = "variant not found"
	case errors.Is(err, domain.ErrEmptyCart):
		msg = "cart is empty"
	case errors.Is(err, domain.ErrValidation):
		msg = "invalid input"
	default:
		log.Error("checkout failed", "err", err)
	}
	writeJSON(w, log, http.StatusBadRequest, errorBody{msg})
}

func (h CheckoutHandler) Callback(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.Callback"
	log := slog.With("op", op)

	reference := r.URL.Query().Get("reference")
	if err := h.checkout.ConfirmPayment(r.Context(), reference); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	log.Info("payment confirmed", "reference", reference)
	w.WriteHeader(http.StatusNoContent)
}

func (h CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.ListOrders"
	log := slog.With("op", op)

	orders, err := h.orders.ListOrders(r.Context(), userID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	vs := make([]Order, len(orders))
	for i := range orders {
		vs[i] = toOrder(orders[i])
	}
	writeJSON(w, log, http.StatusOK, vs)
}

func (h CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.GetOrder"
	log := slog.With("op", op)

	orderID, err := strconv.ParseInt(r.PathValue("orderID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid order id"})
		return
	}

	order, err := h.orders.GetOrder(r.Context(), userID(r), orderID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toOrder(order))
}
