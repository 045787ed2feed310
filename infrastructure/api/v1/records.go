package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/infrastructure/api/middleware"
	"github.com/feedpulse/feedpulse/infrastructure/api/v1/dto"
)

// RecordsRouter handles record API endpoints.
type RecordsRouter struct {
	client *feedpulse.Client
	logger *slog.Logger
}

// NewRecordsRouter creates a new RecordsRouter.
func NewRecordsRouter(client *feedpulse.Client) *RecordsRouter {
	return &RecordsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for record endpoints.
func (r *RecordsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Ingest)
	router.Get("/{id}", r.Get)

	return router
}

// List handles GET /api/v1/records.
func (r *RecordsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)
	topic := req.URL.Query().Get("topic")

	records, err := r.client.Records.List(ctx, service.ListParams{
		Topic:  topic,
		Limit:  pagination.Limit(),
		Offset: pagination.Offset(),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Records.Count(ctx, topic)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.RecordListResponse{
		Data: recordsToDTO(records),
		Meta: pagination.Meta(total),
	})
}

// Get handles GET /api/v1/records/{id}.
func (r *RecordsRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid record id", err), r.logger)
		return
	}

	rec, err := r.client.Records.Get(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, recordToDTO(rec))
}

// Ingest handles POST /api/v1/records.
func (r *RecordsRouter) Ingest(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.IngestRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if body.Source == "" {
		body.Source = "synthetic"
	}

	result, err := r.client.Ingest.Run(ctx, service.IngestParams{
		Source: body.Source,
		Topic:  body.Topic,
		Count:  body.Count,
		Path:   body.Path,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.IngestResponse{
		Source:    result.Source,
		Inserted:  result.Inserted,
		RecordIDs: result.RecordIDs,
	})
}
