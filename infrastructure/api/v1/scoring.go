package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/infrastructure/api/middleware"
	"github.com/feedpulse/feedpulse/infrastructure/api/v1/dto"
)

// ScoringRouter handles scoring API endpoints.
type ScoringRouter struct {
	client *feedpulse.Client
	logger *slog.Logger
}

// NewScoringRouter creates a new ScoringRouter.
func NewScoringRouter(client *feedpulse.Client) *ScoringRouter {
	return &ScoringRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for scoring endpoints.
func (r *ScoringRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/passes", r.RunPass)
	router.Get("/models", r.Models)

	return router
}

// RunPass handles POST /api/v1/scoring/passes. It runs one synchronous
// scoring pass and reports what it did.
func (r *ScoringRouter) RunPass(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.ScoreRequest
	if req.Body != nil && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
			return
		}
	}

	params := service.ScoreParams{
		ModelName:     body.ModelName,
		Topic:         body.Topic,
		SinceRecordID: body.SinceRecordID,
		Limit:         body.Limit,
	}
	if body.SinceTime != nil {
		params.SinceTime = *body.SinceTime
	}

	report, err := r.client.Scoring.Run(ctx, params)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ScoreResponse{
		ModelName:  report.ModelName,
		Candidates: report.Candidates,
		Scored:     report.Scored,
		Skipped:    report.Skipped,
	})
}

// Models handles GET /api/v1/scoring/models.
func (r *ScoringRouter) Models(w http.ResponseWriter, req *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, dto.ModelsResponse{
		Models: r.client.Scoring.Models(),
	})
}
