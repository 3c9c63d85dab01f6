package httphandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/niksmo/product-categories/internal/core/port"
)

// GET / ?user=<id>&query=<text> (200 OK HTML, 304 Not modified, 400 Bad request)
// GET /v1/products ?user=<id>&query=<text> (200 OK JSON, 304 Not modified, 400 Bad request)

const (
	userParam  = "user"
	queryParam = "query"
)

var errInvalidUser = errors.New("invalid user id")

type CatalogHandler struct {
	viewer port.CatalogViewer
}

func RegisterCatalog(mux *http.ServeMux, viewer port.CatalogViewer) {
	h := CatalogHandler{viewer}
	mux.HandleFunc("GET /{$}", h.GetPage)
	mux.HandleFunc("GET /v1/products", h.GetProducts)
}

func (h CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetPage"
	log := slog.With("op", op)

	v, ok := h.view(w, r, log)
	if !ok {
		return
	}

	body, err := renderCatalog(v)
	if err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		log.Error("failed to render page", "err", err)
		return
	}

	writeWithETag(w, r, "text/html; charset=utf-8", body)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	v, ok := h.view(w, r, log)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(fromDomain(v.Products)); err != nil {
		http.Error(w, "failed to encode products", http.StatusInternalServerError)
		log.Error("failed to encode products", "err", err)
		return
	}

	writeWithETag(w, r, "application/json", buf.Bytes())
}

func (h CatalogHandler) view(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (domain.CatalogView, bool) {
	c, err := parseCriteria(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warn("failed to parse criteria", "err", err)
		return domain.CatalogView{}, false
	}

	v, err := h.viewer.View(r.Context(), c)
	if err != nil {
		http.Error(w, "catalog is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to view catalog", "err", err)
		return domain.CatalogView{}, false
	}

	log.Debug("catalog viewed",
		"query", c.Query, "nProducts", len(v.Products),
	)
	return v, true
}

// parseCriteria reads the filter state from the query string. An absent or
// empty user selects all users; the query is taken verbatim.
func parseCriteria(r *http.Request) (domain.Criteria, error) {
	q := r.URL.Query()
	c := domain.Criteria{}.WithQuery(q.Get(queryParam))

	if s := q.Get(userParam); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return domain.Criteria{}, errInvalidUser
		}
		c = c.WithUser(id)
	}
	return c, nil
}
