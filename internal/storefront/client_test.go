package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/lumafood/storefront-api/internal/cart"
)

type memSlot struct {
	value string
}

func (m *memSlot) Read() (string, error)    { return m.value, nil }
func (m *memSlot) Write(value string) error { m.value = value; return nil }

func newTestStore(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewStore(&memSlot{})
}

func TestCheckoutEmptyCartSkipsNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := New(server.URL, newTestStore(t), nil)
	_, err := client.Checkout(context.Background())
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatal("empty cart must never reach the network")
	}
}

func TestCheckoutSuccessReturnsRedirectURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/create-checkout-session" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://checkout.stripe.com/pay/cs_1"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	store.Add("price_soup", "Soup")
	store.Add("price_soup", "Soup")

	client := New(server.URL, store, nil)
	url, err := client.Checkout(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://checkout.stripe.com/pay/cs_1" {
		t.Fatalf("unexpected url %q", url)
	}
	if len(store.Items()) != 1 {
		t.Fatal("cart must not be cleared by checkout")
	}
}

func TestCheckoutFailureKeepsCartAndSurfacesDiagnostic(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to create Stripe Checkout session.","detail":"No such price: price_gone"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	store.Add("price_gone", "Gone")

	client := New(server.URL, store, nil)
	_, err := client.Checkout(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Failed to create Stripe Checkout session.: No such price: price_gone"
	if err.Error() != want {
		t.Fatalf("unexpected diagnostic %q", err.Error())
	}
	if len(store.Items()) != 1 {
		t.Fatal("cart must survive a failed checkout for retry")
	}
}

func TestCheckoutDoubleSubmitGuard(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte(`{"url":"https://checkout.stripe.com/pay/cs_1"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	store.Add("price_soup", "Soup")
	client := New(server.URL, store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := client.Checkout(context.Background())
		done <- err
	}()

	<-entered
	if !client.Busy() {
		t.Fatal("client should report busy while a request is in flight")
	}
	if _, err := client.Checkout(context.Background()); !errors.Is(err, ErrCheckoutInFlight) {
		t.Fatalf("expected ErrCheckoutInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if client.Busy() {
		t.Fatal("busy flag must clear after completion")
	}
}

func TestRenderEndToEnd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price_soup":{"amount":"12.00","currency":"NZD"}}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	store.Add("price_soup", "Soup")
	store.Add("price_soup", "Soup")

	client := New(server.URL, store, nil)

	// Before the catalog loads, render falls back.
	view := client.Render()
	if view.Subtotal != cart.FallbackTotal {
		t.Fatalf("expected fallback before load, got %q", view.Subtotal)
	}

	if _, err := client.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}

	view = client.Render()
	if view.Subtotal != "NZD 24.00" {
		t.Fatalf("unexpected subtotal %q", view.Subtotal)
	}
	if view.HasUnpriced {
		t.Fatal("no missing-price indicator expected")
	}
}

func TestRenderAfterCatalogFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch prices","detail":"boom"}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	store.Add("price_soup", "Soup")

	client := New(server.URL, store, nil)
	if _, err := client.LoadCatalog(context.Background()); err == nil {
		t.Fatal("expected catalog load failure")
	}

	view := client.Render()
	if view.Subtotal != cart.FallbackTotal {
		t.Fatalf("expected checkout-time fallback, got %q", view.Subtotal)
	}
}
