package middleware

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
	"github.com/lumafood/storefront-api/pkg/logger"

	"github.com/lumafood/storefront-api/api/responses"
)

// Recoverer converts handler panics into a generic 500 response so a single
// bad request cannot take the process down.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.Wrap(
						pkgerrors.CodeInternal,
						fmt.Errorf("panic: %v", rec),
						"handler panicked",
					)
					responses.WriteError(r.Context(), logg, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
