package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products?category=&q=&brand=&size=&color=&price_min=&price_max= (200 OK)
// GET v1/products/{slug} (200 OK, 404 Not found)

type catalogQuery struct {
	Category string  `schema:"category"`
	Query    string  `schema:"q"`
	Brand    string  `schema:"brand"`
	Size     string  `schema:"size"`
	Color    string  `schema:"color"`
	PriceMin float64 `schema:"price_min"`
	PriceMax float64 `schema:"price_max"`
	Limit    int     `schema:"limit"`
	Offset   int     `schema:"offset"`
}

type CatalogHandler struct {
	catalog port.CatalogReader
	decoder *schema.Decoder
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogReader) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	h := CatalogHandler{catalog, decoder}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)
}

func (h CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListProducts"
	log := slog.With("op", op)

	var q catalogQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		log.Warn("failed to parse query params", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid query"})
		return
	}

	page, err := h.catalog.ListProducts(r.Context(), domain.CatalogQuery{
		Category: q.Category,
		Query:    q.Query,
		Brand:    q.Brand,
		Size:     q.Size,
		Color:    q.Color,
		PriceMin: q.PriceMin,
		PriceMax: q.PriceMax,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, CatalogPage{
		Items: toProducts(page.Items),
		Total: page.Total,
	})
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProduct(p))
}
