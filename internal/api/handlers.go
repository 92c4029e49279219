package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vexdb/vexdb"
	"github.com/vexdb/vexdb/distance"
	"github.com/vexdb/vexdb/metadata"
	"github.com/vexdb/vexdb/model"
)

// Handler implements the HTTP handlers for the vexdb API.
type Handler struct {
	db               *vexdb.DB
	logger           *slog.Logger
	defaultListLimit int
}

// NewHandler creates a Handler around db.
func NewHandler(db *vexdb.DB, logger *slog.Logger, defaultListLimit int) *Handler {
	return &Handler{
		db:               db,
		logger:           logger,
		defaultListLimit: defaultListLimit,
	}
}

// insertRequest is the body of POST /vectors.
type insertRequest struct {
	Vector struct {
		ID   string    `json:"id"`
		Data []float32 `json:"data"`
	} `json:"vector"`
	Metadata metadata.Document `json:"metadata,omitempty"`
}

// searchRequest is the body of POST /search.
type searchRequest struct {
	Vector         []float32 `json:"vector"`
	K              int       `json:"k"`
	DistanceMetric int       `json:"distance_metric"`
}

type listResponse struct {
	Records []model.Record `json:"records"`
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
}

type searchResponse struct {
	Results []model.SearchResult `json:"results"`
	Count   int                  `json:"count"`
}

// InsertVector handles POST /vectors.
func (h *Handler) InsertVector(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Vector.ID == "" {
		writeError(w, http.StatusBadRequest, "vector id is required")
		return
	}
	if len(req.Vector.Data) == 0 {
		writeError(w, http.StatusBadRequest, "vector data is required")
		return
	}

	rec, err := h.db.Insert(r.Context(), req.Vector.ID, req.Vector.Data, req.Metadata)
	if err != nil {
		h.writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ListVectors handles GET /vectors with offset/limit pagination.
func (h *Handler) ListVectors(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = h.defaultListLimit
	}

	records, total, err := h.db.List(r.Context(), offset, limit)
	if err != nil {
		h.writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Records: records,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	})
}

// GetVector handles GET /vectors/{id}.
func (h *Handler) GetVector(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.db.Get(r.Context(), id)
	if err != nil {
		h.writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteVector handles DELETE /vectors/{id}.
func (h *Handler) DeleteVector(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.db.Delete(r.Context(), id); err != nil {
		h.writeDBError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchVectors handles POST /search.
func (h *Handler) SearchVectors(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Vector) == 0 {
		writeError(w, http.StatusBadRequest, "query vector is required")
		return
	}

	results, err := h.db.Search(r.Context(), req.Vector, req.K, distance.Metric(req.DistanceMetric))
	if err != nil {
		h.writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results: results,
		Count:   len(results),
	})
}

// GetStats handles GET /stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.db.Stats())
}

// GetConfig handles GET /config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.db.Config())
}

// Health handles GET /health. Liveness only, no state reads.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDBError translates public database errors to HTTP status codes.
func (h *Handler) writeDBError(w http.ResponseWriter, err error) {
	var (
		dimErr    *vexdb.ErrDimensionMismatch
		metricErr *vexdb.ErrInvalidMetric
	)
	switch {
	case errors.Is(err, vexdb.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vexdb.ErrEmptyID),
		errors.As(err, &dimErr),
		errors.As(err, &metricErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message, Status: status})
}
