package controllers

import (
	"net/http"

	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
	"github.com/lumafood/storefront-api/pkg/logger"

	"github.com/lumafood/storefront-api/api/responses"
	"github.com/lumafood/storefront-api/api/validators"
	"github.com/lumafood/storefront-api/internal/checkout"
)

type checkoutRequest struct {
	Items []checkout.CandidateItem `json:"items"`
}

// CreateCheckoutSession validates the submitted cart, creates a hosted
// checkout session and returns its redirect URL.
func CreateCheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := checkout.ValidateItems(payload.Items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithField(ctx, "line_items", len(items))
		}

		session, err := svc.CreateSession(ctx, items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
