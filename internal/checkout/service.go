package checkout

import (
	"context"

	"github.com/lumafood/storefront-api/pkg/logger"
	"github.com/lumafood/storefront-api/pkg/stripe"
)

// Redirect targets are fixed: the hosted payment page always returns buyers
// to the storefront, never to a caller-supplied URL.
const (
	successURL = "https://lumafood.com/success/"
	cancelURL  = "https://lumafood.com/products/"
)

// Shipping is restricted to New Zealand.
var allowedShippingCountries = []string{"NZ"}

type sessionCreator interface {
	CreateCheckoutSession(ctx context.Context, in stripe.SessionInput) (*stripe.Session, error)
}

// Session carries the provider-hosted redirect URL back to the client.
type Session struct {
	URL string `json:"url"`
}

// Service creates provider checkout sessions from validated line items.
type Service interface {
	CreateSession(ctx context.Context, items []LineItem) (*Session, error)
}

type service struct {
	client sessionCreator
	logg   *logger.Logger
}

func NewService(client sessionCreator, logg *logger.Logger) Service {
	return &service{client: client, logg: logg}
}

func (s *service) CreateSession(ctx context.Context, items []LineItem) (*Session, error) {
	lineItems := make([]stripe.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, stripe.LineItem{Price: item.Price, Quantity: item.Quantity})
	}

	session, err := s.client.CreateCheckoutSession(ctx, stripe.SessionInput{
		SuccessURL:       successURL,
		CancelURL:        cancelURL,
		AllowedCountries: allowedShippingCountries,
		LineItems:        lineItems,
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "session_id", session.ID), "checkout session created")
	}
	return &Session{URL: session.URL}, nil
}
