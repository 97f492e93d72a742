package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lumafood/storefront-api/internal/cart"
	"github.com/lumafood/storefront-api/internal/prices"
	"github.com/lumafood/storefront-api/pkg/logger"
)

const (
	pricesPath   = "/prices"
	checkoutPath = "/api/create-checkout-session"
)

var (
	// ErrCartEmpty is reported before any network call is made.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCheckoutInFlight guards against double submission.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// Client drives the storefront against the API: it owns the cart store, the
// memoized catalog snapshot, and checkout initiation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *cart.Store
	catalog    *CatalogLoader
	busy       atomic.Bool
	logg       *logger.Logger
}

func New(baseURL string, store *cart.Store, logg *logger.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		logg:       logg,
	}
	c.catalog = NewCatalogLoader(c.fetchCatalog)
	return c
}

// Store exposes the cart for UI mutations.
func (c *Client) Store() *cart.Store {
	return c.store
}

// LoadCatalog fetches the price catalog, sharing one in-flight request among
// concurrent callers.
func (c *Client) LoadCatalog(ctx context.Context) (prices.Catalog, error) {
	return c.catalog.Load(ctx)
}

// Render projects the current cart against whatever pricing data has loaded
// so far. Both reads are snapshotted here, so a render after a mutation and
// a render after catalog load converge on the same final state.
func (c *Client) Render() cart.View {
	snapshot, _ := c.catalog.Snapshot()
	return cart.BuildView(c.store.Items(), snapshot)
}

// Checkout serializes the cart, creates a provider session and returns the
// redirect URL. The cart is left untouched in every outcome: clearing is an
// explicit user action, and on failure the user may simply retry.
func (c *Client) Checkout(ctx context.Context) (string, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return "", ErrCheckoutInFlight
	}
	defer c.busy.Store(false)

	items := c.store.Items()
	if len(items) == 0 {
		return "", ErrCartEmpty
	}

	type wireItem struct {
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
	}
	payload := struct {
		Items []wireItem `json:"items"`
	}{Items: make([]wireItem, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, wireItem{Price: item.PriceID, Quantity: item.Qty})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("serializing cart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkoutPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout request failed: %w", err)
	}
	defer res.Body.Close()

	var decoded struct {
		URL    string `json:"url"`
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading checkout response: %w", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("checkout failed: %s", strings.TrimSpace(string(raw)))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 || decoded.URL == "" {
		msg := decoded.Error
		if msg == "" {
			msg = "Checkout failed"
		}
		if decoded.Detail != "" {
			msg += ": " + decoded.Detail
		}
		return "", errors.New(msg)
	}

	return decoded.URL, nil
}

// Busy reports whether a checkout request is in flight, letting the UI
// disable its trigger control.
func (c *Client) Busy() bool {
	return c.busy.Load()
}

func (c *Client) fetchCatalog(ctx context.Context) (prices.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pricesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("building prices request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prices request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("prices endpoint failed: %d", res.StatusCode)
	}

	var catalog prices.Catalog
	if err := json.NewDecoder(res.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decoding prices: %w", err)
	}
	return catalog, nil
}
