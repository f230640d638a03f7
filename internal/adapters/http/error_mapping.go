package httpadapter

import (
	"net/http"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrPatternNotFound),
		domain.IsKind(err, domain.ErrMalformedQuery),
		domain.IsKind(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnknownTarget),
		domain.IsKind(err, domain.ErrUnknownVerb):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
