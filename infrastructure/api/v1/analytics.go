package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/infrastructure/api/middleware"
	"github.com/feedpulse/feedpulse/infrastructure/api/v1/dto"
)

// AnalyticsRouter handles analytics API endpoints.
type AnalyticsRouter struct {
	client *feedpulse.Client
	logger *slog.Logger
}

// NewAnalyticsRouter creates a new AnalyticsRouter.
func NewAnalyticsRouter(client *feedpulse.Client) *AnalyticsRouter {
	return &AnalyticsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for analytics endpoints.
func (r *AnalyticsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/latest", r.Latest)
	router.Get("/stats", r.Stats)

	return router
}

// Latest handles GET /api/v1/analytics/latest. Each row joins a record with
// its most recent prediction; unscored records appear without one.
func (r *AnalyticsRouter) Latest(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)
	topic := req.URL.Query().Get("topic")

	rows, err := r.client.Analytics.Latest(ctx, service.LatestParams{
		Topic:     topic,
		ModelName: req.URL.Query().Get("model"),
		Limit:     pagination.Limit(),
		Offset:    pagination.Offset(),
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

	middleware.WriteJSON(w, http.StatusOK, dto.LatestResponse{
		Data: scoredToDTO(rows),
		Meta: pagination.Meta(total),
	})
}

// Stats handles GET /api/v1/analytics/stats. The model query parameter is
// required so scores from different models never blend.
func (r *AnalyticsRouter) Stats(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	stats, err := r.client.Analytics.Stats(ctx, service.StatsParams{
		ModelName: req.URL.Query().Get("model"),
		Topic:     req.URL.Query().Get("topic"),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	byLabel := make(map[string]dto.LabelStat, len(stats.ByLabel()))
	for label, stat := range stats.ByLabel() {
		byLabel[string(label)] = dto.LabelStat{
			Count:     stat.Count(),
			MeanScore: stat.MeanScore(),
		}
	}

	middleware.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		ModelName: stats.ModelName(),
		Topic:     req.URL.Query().Get("topic"),
		Total:     stats.Total(),
		MeanScore: stats.MeanScore(),
		ByLabel:   byLabel,
	})
}
