package controllers

import (
	"net/http"

	"github.com/docsai-app/docsai-backend/api/middleware"
	"github.com/docsai-app/docsai-backend/api/responses"
	"github.com/docsai-app/docsai-backend/api/validators"
	"github.com/docsai-app/docsai-backend/internal/documents"
	"github.com/docsai-app/docsai-backend/pkg/logger"
)

const (
	maxRegionFilterLen   = 64
	defaultTemplateLimit = 50
	maxTemplateLimit     = 200
)

// TemplateList returns the public template catalog, optionally filtered by
// the ?region= query parameter and capped by ?limit=.
func TemplateList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := validators.SanitizeString(r.URL.Query().Get("region"), maxRegionFilterLen)

		limit, err := validators.ParseQueryInt(r, "limit", defaultTemplateLimit, 1, maxTemplateLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.ListTemplates(r.Context(), middleware.UserIDFromContext(r.Context()), region)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(out) > limit {
			out = out[:limit]
		}
		responses.WriteSuccess(w, out)
	}
}
