package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET    v1/cart (200 OK)
// POST   v1/cart/items JSON {product_id, variant_id, quantity} (201 Created, 400 Bad request)
// PATCH  v1/cart/items JSON {product_id, variant_id, quantity} (204 No content)
// DELETE v1/cart/items/{productID}?variant_id= (204 No content)
// DELETE v1/cart (204 No content)
// GET    v1/wishlist (200 OK)
// POST   v1/wishlist/{productID}/toggle (200 OK)
// PUT    v1/wishlist/{productID} (204 No content)
// DELETE v1/wishlist/{productID} (204 No content)

type CartHandler struct {
	cart     port.CartKeeper
	wishlist port.WishlistKeeper
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartKeeper, wishlist port.WishlistKeeper,
) {
	h := CartHandler{cart, wishlist}
	mux.HandleFunc("GET /v1/cart", requireUser(h.ViewCart))
	mux.HandleFunc("POST /v1/cart/items", requireUser(h.AddItem))
	mux.HandleFunc("PATCH /v1/cart/items", requireUser(h.UpdateItem))
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", requireUser(h.RemoveItem))
	mux.HandleFunc("DELETE /v1/cart", requireUser(h.ClearCart))

	mux.HandleFunc("GET /v1/wishlist", requireUser(h.Wishlist))
	mux.HandleFunc("POST /v1/wishlist/{productID}/toggle", requireUser(h.Toggle))
	mux.HandleFunc("PUT /v1/wishlist/{productID}", requireUser(h.WishlistAdd))
	mux.HandleFunc("DELETE /v1/wishlist/{productID}", requireUser(h.WishlistRemove))
}

func (h CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ViewCart"
	log := slog.With("op", op)

	lines, err := h.cart.ViewCart(r.Context(), userID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	vs := make([]CartLine, len(lines))
	for i, line := range lines {
		vs[i] = CartLine{
			Product:  toProduct(line.Product),
			Variant:  toVariant(line.Variant),
			Quantity: line.Quantity,
		}
	}
	writeJSON(w, log, http.StatusOK, vs)
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	item, ok := decodeCartItem(w, r, log)
	if !ok {
		return
	}

	if err := h.cart.AddItem(r.Context(), item); err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.UpdateItem"
	log := slog.With("op", op)

	item, ok := decodeCartItem(w, r, log)
	if !ok {
		return
	}

	if err := h.cart.UpdateItem(r.Context(), item); err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid product id"})
		return
	}
	variantID, _ := strconv.ParseInt(r.URL.Query().Get("variant_id"), 10, 64)

	err = h.cart.RemoveItem(r.Context(), userID(r), productID, variantID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	log := slog.With("op", op)

	if err := h.cart.ClearCart(r.Context(), userID(r)); err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Wishlist"
	log := slog.With("op", op)

	ps, err := h.wishlist.Wishlist(r.Context(), userID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toProducts(ps))
}

func (h CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Toggle"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid product id"})
		return
	}

	added, err := h.wishlist.WishlistToggle(r.Context(), userID(r), productID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, struct {
		InWishlist bool `json:"in_wishlist"`
	}{added})
}

func (h CartHandler) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.WishlistAdd"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid product id"})
		return
	}

	err = h.wishlist.WishlistAdd(r.Context(), userID(r), productID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.WishlistRemove"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid product id"})
		return
	}

	err = h.wishlist.WishlistRemove(r.Context(), userID(r), productID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCartItem(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (domain.CartItem, bool) {
	var body CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid JSON data"})
		return domain.CartItem{}, false
	}

	return domain.CartItem{
		UserID:    userID(r),
		ProductID: body.ProductID,
		VariantID: body.VariantID,
		Quantity:  body.Quantity,
	}, true
}
