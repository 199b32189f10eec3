// Package chi exposes the retail store HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
	cataloguc "github.com/kailas-cloud/retailstore/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/retailstore/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/retailstore/internal/usecase/recommend"
	suggestuc "github.com/kailas-cloud/retailstore/internal/usecase/suggest"
)

// Error codes returned in the "error" field of failure responses.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	catalog       *cataloguc.Service
	recommend     *recommenduc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	recommend *recommenduc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:   catalog,
		recommend: recommend,
		suggest:   suggest,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidProductID, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrMissingEmbedding, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrMissingImage, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Routes mounts all API routes on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/products", s.listProducts)
	r.Post("/products", s.createProduct)
	r.Delete("/products", s.bulkDeleteProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Put("/products/{id}", s.updateProduct)
	r.Delete("/products/{id}", s.deleteProduct)
	r.Get("/products/{id}/recommendations", s.productRecommendations)
	r.Post("/fashionbot", s.fashionbot)
	r.Get("/autocomplete", s.autocomplete)
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metrics)

	return r
}

// productSummaryJSON renders a search projection with the hex identifier.
type productSummaryJSON struct {
	domain.ProductSummary
	ID string `json:"_id"`
}

func summariesToJSON(items []domain.ProductSummary) []productSummaryJSON {
	out := make([]productSummaryJSON, len(items))
	for i, item := range items {
		out[i] = productSummaryJSON{ProductSummary: item, ID: item.ID.Hex()}
	}
	return out
}

type searchResponse struct {
	Products      []productSummaryJSON `json:"products"`
	TotalPages    int                  `json:"total_pages"`
	CurrentPage   int                  `json:"current_page"`
	TotalProducts int                  `json:"total_products"`
}

// listProducts handles GET /products.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Page must be an integer")
			return
		}
		page = parsed
	}

	params := search.Params{
		Query:       q.Get("q"),
		Category:    q.Get("category"),
		SubCategory: q.Get("sub_category"),
		Gender:      q.Get("gender"),
		Brand:       q.Get("brand"),
		OnSale:      q.Get("on_sale") == "true",
		Page:        page,
	}

	result, err := s.catalog.Search(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Products:      summariesToJSON(result.Products),
		TotalPages:    result.TotalPages,
		CurrentPage:   result.CurrentPage,
		TotalProducts: result.TotalProducts,
	})
}

// getProduct handles GET /products/{id}.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// createProduct handles POST /products.
func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.catalog.Create(r.Context(), &p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Product created successfully",
		"id":      id,
	})
}

// updateProduct handles PUT /products/{id}.
func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var u domain.ProductUpdate
	if err := dec.Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.catalog.Update(r.Context(), chi.URLParam(r, "id"), u); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

// deleteProduct handles DELETE /products/{id}.
func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// bulkDeleteProducts handles DELETE /products.
func (s *Server) bulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filter map[string]any `json:"filter"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	deleted, err := s.catalog.BulkDelete(r.Context(), req.Filter)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Deleted " + strconv.FormatInt(deleted, 10) + " products",
	})
}

// productRecommendations handles GET /products/{id}/recommendations.
func (s *Server) productRecommendations(w http.ResponseWriter, r *http.Request) {
	hits, err := s.recommend.ForProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summariesToJSON(hits))
}

// fashionbot handles POST /fashionbot.
func (s *Server) fashionbot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Question  string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.recommend.Ask(r.Context(), req.ProductID, req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"answer":          answer.Text,
		"recommendations": summariesToJSON(answer.Recommendations),
	})
}

// autocomplete handles GET /autocomplete.
func (s *Server) autocomplete(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.suggest.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:      code,
		Message:    message,
		StatusCode: status,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "The product with the specified ID does not exist"
	case errors.Is(err, domain.ErrMissingEmbedding):
		return "The product does not have embeddings for similarity search"
	case errors.Is(err, domain.ErrMissingImage):
		return "The product does not have an image"
	case errors.Is(err, domain.ErrInvalidProductID):
		return "The provided product ID is not valid"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input: " + err.Error()
	default:
		return "internal error"
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
