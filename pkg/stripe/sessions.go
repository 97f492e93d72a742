package stripe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
)

// LineItem is one validated cart line forwarded to the session.
type LineItem struct {
	Price    string
	Quantity int64
}

// SessionInput describes a payment-mode checkout session.
type SessionInput struct {
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string
	LineItems        []LineItem
}

// Session is the provider's response, passed through unmodified. Only the
// redirect URL is consumed.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession posts a payment-mode session. Stripe expects
// application/x-www-form-urlencoded for this endpoint, with line items
// encoded as indexed form fields. No idempotency key is applied, so a retry
// after a timeout may create a duplicate session.
func (c *Client) CreateCheckoutSession(ctx context.Context, in SessionInput) (*Session, error) {
	if err := c.credentialErr(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMissingCredential, err, "creating checkout session")
	}

	params := url.Values{}
	params.Set("mode", "payment")
	params.Set("success_url", in.SuccessURL)
	params.Set("cancel_url", in.CancelURL)
	for _, country := range in.AllowedCountries {
		params.Add("shipping_address_collection[allowed_countries][]", country)
	}
	for i, item := range in.LineItems {
		prefix := "line_items[" + strconv.Itoa(i) + "]"
		params.Set(prefix+"[price]", item.Price)
		params.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	endpoint := c.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamCheckout, err, "building session request").WithDetail(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamCheckout, err, "calling stripe").WithDetail(err.Error())
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamCheckout, err, "reading stripe response").WithDetail(err.Error())
	}

	var decoded sessionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamCheckout, err, "decoding session response").WithDetail(string(body))
	}

	ok := res.StatusCode >= 200 && res.StatusCode < 300
	if !ok || decoded.URL == "" {
		detail := bestDiagnostic(body)
		if decoded.Error != nil && decoded.Error.Message != "" {
			detail = decoded.Error.Message
		}
		return nil, pkgerrors.New(pkgerrors.CodeUpstreamCheckout, "stripe rejected the session").WithDetail(detail)
	}

	return &Session{ID: decoded.ID, URL: decoded.URL}, nil
}
