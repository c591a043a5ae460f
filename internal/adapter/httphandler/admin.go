package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Admin variant CRUD. Row-level authorization is enforced by the
// data-store policy layer; the fronting proxy only lets staff
// identities reach these routes.
//
// GET    v1/admin/products/{productID}/variants (200 OK)
// POST   v1/admin/products/{productID}/variants JSON (201 Created)
// PUT    v1/admin/variants/{variantID} JSON (204 No content)
// DELETE v1/admin/variants/{variantID} (204 No content)

type AdminHandler struct {
	admin port.VariantAdmin
}

func RegisterAdmin(mux *http.ServeMux, admin port.VariantAdmin) {
	h := AdminHandler{admin}
	mux.HandleFunc("GET /v1/admin/products/{productID}/variants", h.ListVariants)
	mux.HandleFunc("POST /v1/admin/products/{productID}/variants", h.AddVariant)
	mux.HandleFunc("PUT /v1/admin/variants/{variantID}", h.UpdateVariant)
	mux.HandleFunc("DELETE /v1/admin/variants/{variantID}", h.DeleteVariant)
}

func (h AdminHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.ListVariants"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid product id"})
		return
	}

	vs, err := h.admin.ListVariants(r.Context(), productID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	out := make([]Variant, len(vs))
	for i := range vs {
		out[i] = toVariant(vs[i])
	}
	writeJSON(w, log, http.StatusOK, out)
}

func (h AdminHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.AddVariant"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid product id"})
		return
	}

	body, ok := decodeVariant(w, r, log)
	if !ok {
		return
	}

	created, err := h.admin.AddVariant(r.Context(), domain.ProductVariant{
		ProductID: productID,
		Size:      body.Size,
		Color:     body.Color,
		Price:     body.Price,
		Stock:     body.Stock,
	})
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	log.Info("variant created", "productID", productID, "variantID", created.ID)
	writeJSON(w, log, http.StatusCreated, toVariant(created))
}

func (h AdminHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.UpdateVariant"
	log := slog.With("op", op)

	variantID, err := strconv.ParseInt(r.PathValue("variantID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid variant id"})
		return
	}

	body, ok := decodeVariant(w, r, log)
	if !ok {
		return
	}

	err = h.admin.UpdateVariant(r.Context(), domain.ProductVariant{
		ID:        variantID,
		ProductID: body.ProductID,
		Size:      body.Size,
		Color:     body.Color,
		Price:     body.Price,
		Stock:     body.Stock,
	})
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteVariant"
	log := slog.With("op", op)

	variantID, err := strconv.ParseInt(r.PathValue("variantID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid variant id"})
		return
	}

	if err := h.admin.DeleteVariant(r.Context(), variantID); err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeVariant(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (Variant, bool) {
	var body Variant
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid JSON data"})
		return Variant{}, false
	}
	return body, true
}
