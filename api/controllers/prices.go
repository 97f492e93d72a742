package controllers

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
	"github.com/lumafood/storefront-api/pkg/logger"

	"github.com/lumafood/storefront-api/api/responses"
	"github.com/lumafood/storefront-api/internal/prices"
)

// Prices returns the published catalog as a flat map of price id to amount
// and currency. Responses are publicly cacheable for the snapshot lifetime.
func Prices(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "price service unavailable"))
			return
		}

		catalog, err := svc.Catalog(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		maxAge := int(svc.MaxAge().Seconds())
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
		responses.WriteSuccess(w, catalog)
	}
}
