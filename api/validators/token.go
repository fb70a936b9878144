package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/docsai-app/docsai-backend/pkg/errors"
)

// BearerToken pulls the token out of the Authorization header. Missing or
// malformed headers yield an unauthorized error.
func BearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(raw[len("bearer "):])
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "empty bearer token")
	}
	return token, nil
}
