package stripe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
)

// priceListLimit caps the single page fetched from Stripe. Prices beyond the
// cap are not fetched; the storefront catalog is far below it.
const priceListLimit = 100

// Price is one record from Stripe's price list. UnitAmount is nil for
// tiered/usage-based prices, which have no single display amount.
type Price struct {
	ID         string `json:"id"`
	UnitAmount *int64 `json:"unit_amount"`
	Currency   string `json:"currency"`
}

type priceListResponse struct {
	Data []Price `json:"data"`
}

// ListActivePrices fetches the first page of active prices.
func (c *Client) ListActivePrices(ctx context.Context) ([]Price, error) {
	if err := c.credentialErr(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMissingCredential, err, "listing prices")
	}

	url := c.baseURL + "/v1/prices?active=true&limit=" + strconv.Itoa(priceListLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamPriceFetch, err, "building price request").WithDetail(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamPriceFetch, err, "calling stripe").WithDetail(err.Error())
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamPriceFetch, err, "reading stripe response").WithDetail(err.Error())
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstreamPriceFetch, "stripe returned non-success status").
			WithDetail(bestDiagnostic(body))
	}

	var list priceListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamPriceFetch, err, "decoding price list").WithDetail(string(body))
	}

	return list.Data, nil
}
