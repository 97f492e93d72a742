package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lumafood/storefront-api/pkg/config"
	"github.com/lumafood/storefront-api/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"

	defaultBaseURL = "https://api.stripe.com"
)

var errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)

// Client talks to the Stripe REST API directly. The two endpoints this
// service consumes (price listing and checkout session creation) are called
// over plain HTTPS with a bearer token; responses are treated as opaque
// beyond the documented fields.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	environment string
}

// NewClient validates the configured secrets once at startup. A missing key
// is not fatal here: the client is still constructed and every API call
// reports the missing credential, matching the per-request failure mode of
// the HTTP handlers. A key that contradicts the configured environment is a
// config mistake and fails fast.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		if logg != nil {
			logg.Warn(ctx, "stripe secret key not configured; provider calls will fail")
		}
	} else if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if logg != nil && apiKey != "" {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     baseURL,
		apiKey:      apiKey,
		environment: env,
	}, nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// Configured reports whether a secret key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *Client) credentialErr() error {
	if c == nil {
		return errors.New("stripe client not initialized")
	}
	if c.apiKey == "" {
		return errors.New("stripe secret key missing from environment")
	}
	return nil
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
