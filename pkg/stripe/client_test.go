package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/lumafood/storefront-api/pkg/config"
	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := NewClient(context.Background(), config.StripeConfig{
		APIKey:  "sk_test_abc123",
		Env:     "test",
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientRejectsMismatchedKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), config.StripeConfig{
		APIKey: "sk_live_abc",
		Env:    "test",
	}, nil)
	if err == nil {
		t.Fatal("expected error for live key in test environment")
	}
}

func TestNewClientAllowsMissingKey(t *testing.T) {
	t.Parallel()

	client, err := NewClient(context.Background(), config.StripeConfig{Env: "test"}, nil)
	if err != nil {
		t.Fatalf("missing key should not fail construction: %v", err)
	}
	if client.Configured() {
		t.Fatal("client should report unconfigured")
	}

	_, err = client.ListActivePrices(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeMissingCredential {
		t.Fatalf("expected MISSING_CREDENTIAL, got %v", err)
	}
}

func TestListActivePrices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/prices" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("active") != "true" || r.URL.Query().Get("limit") != "100" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_abc123" {
			t.Errorf("missing bearer token")
		}
		w.Write([]byte(`{"data":[
			{"id":"price_soup","unit_amount":1200,"currency":"nzd"},
			{"id":"price_tiered","unit_amount":null,"currency":"nzd"}
		]}`))
	}))
	defer server.Close()

	prices, err := testClient(t, server.URL).ListActivePrices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 records, got %d", len(prices))
	}
	if prices[0].ID != "price_soup" || *prices[0].UnitAmount != 1200 {
		t.Fatalf("unexpected first record %+v", prices[0])
	}
	if prices[1].UnitAmount != nil {
		t.Fatal("tiered price should have nil unit amount")
	}
}

func TestListActivePricesUpstreamFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API Key provided"}}`))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).ListActivePrices(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstreamPriceFetch {
		t.Fatalf("expected upstream price fetch error, got %v", err)
	}
	if typed.Detail() != "Invalid API Key provided" {
		t.Fatalf("expected structured diagnostic, got %q", typed.Detail())
	}
}

func TestCreateCheckoutSessionFormEncoding(t *testing.T) {
	t.Parallel()

	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		form = r.PostForm
		w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`))
	}))
	defer server.Close()

	session, err := testClient(t, server.URL).CreateCheckoutSession(context.Background(), SessionInput{
		SuccessURL:       "https://lumafood.com/success/",
		CancelURL:        "https://lumafood.com/products/",
		AllowedCountries: []string{"NZ"},
		LineItems: []LineItem{
			{Price: "price_soup", Quantity: 2},
			{Price: "price_bread", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.URL != "https://checkout.stripe.com/pay/cs_test_1" {
		t.Fatalf("unexpected session url %q", session.URL)
	}

	if form.Get("mode") != "payment" {
		t.Fatalf("expected payment mode, got %q", form.Get("mode"))
	}
	if form.Get("success_url") != "https://lumafood.com/success/" {
		t.Fatalf("unexpected success_url %q", form.Get("success_url"))
	}
	if got := form["shipping_address_collection[allowed_countries][]"]; len(got) != 1 || got[0] != "NZ" {
		t.Fatalf("unexpected shipping countries %v", got)
	}
	if form.Get("line_items[0][price]") != "price_soup" || form.Get("line_items[0][quantity]") != "2" {
		t.Fatalf("unexpected first line item: %v", form)
	}
	if form.Get("line_items[1][price]") != "price_bread" || form.Get("line_items[1][quantity]") != "1" {
		t.Fatalf("unexpected second line item: %v", form)
	}
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cs_test_2"}`))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).CreateCheckoutSession(context.Background(), SessionInput{
		LineItems: []LineItem{{Price: "price_soup", Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstreamCheckout {
		t.Fatalf("expected upstream checkout error, got %v", err)
	}
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"No such price: price_gone"}}`))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).CreateCheckoutSession(context.Background(), SessionInput{
		LineItems: []LineItem{{Price: "price_gone", Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Detail() != "No such price: price_gone" {
		t.Fatalf("expected provider message, got %q", typed.Detail())
	}
}
