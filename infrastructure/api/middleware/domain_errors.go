package middleware

import (
	"errors"
	"net/http"

	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/domain/prediction"
	"github.com/feedpulse/feedpulse/internal/database"
)

// statusForDomain maps domain error sentinels to HTTP statuses. The mapped
// errors carry caller-safe messages, so their text goes into the response.
func statusForDomain(err error) (int, bool) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, prediction.ErrReferential):
		return http.StatusNotFound, true
	case errors.Is(err, prediction.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrUnknownSource), errors.Is(err, service.ErrUnknownModel):
		return http.StatusBadRequest, true
	case errors.Is(err, classify.ErrUnavailable):
		return http.StatusServiceUnavailable, true
	default:
		return 0, false
	}
}
