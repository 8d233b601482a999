package fatsecret

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/coldshrine/calorista/internal/domain"
)

const (
	// DefaultBaseURL is the single REST endpoint all operations go through.
	DefaultBaseURL = "https://platform.fatsecret.com/rest/server.api"

	// DefaultMaxRetries is the retry budget per request on token or
	// transport failures.
	DefaultMaxRetries = 2

	defaultTimeout  = 10 * time.Second
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
)

// APIError is a non-200 platform response, surfaced after the token-refresh
// budget is exhausted or immediately when the body does not look auth-related.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed (%d): %s", e.Status, e.Body)
}

// NetworkError is a transport-level failure surfaced after the retry budget
// is exhausted.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ClientConfig carries the construction-time settings of a Client. Zero
// values fall back to package defaults.
type ClientConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	MaxRetries     int
	Timeout        time.Duration
}

// Client signs and executes FatSecret REST operations. It holds a transient
// copy of the access tokens and invalidates it whenever a response looks like
// an auth failure; the mutex serializes refreshes should callers ever share
// one instance across goroutines.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	provider       domain.TokenProvider
	maxRetries     int
	rateLimiter    *rate.Limiter
	logger         zerolog.Logger

	mu     sync.Mutex
	tokens *domain.TokenPair
}

var _ domain.NutritionAPI = (*Client)(nil)

// NewClient creates a FatSecret API client backed by the given token provider.
func NewClient(cfg ClientConfig, provider domain.TokenProvider, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	// The platform allows generous per-day quotas; 5 req/s with a small
	// burst keeps day-by-day walks well under them.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        cfg.BaseURL,
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		provider:       provider,
		maxRetries:     cfg.MaxRetries,
		rateLimiter:    limiter,
		logger:         logger.With().Str("component", "fatsecret").Logger(),
	}
}

// looksLikeTokenError reports whether a non-200 body suggests an auth/token
// problem. The platform returns free-form error text and exposes no stable
// error code, so the word "token" in the lowercased body is the trigger for a
// refresh-and-retry.
func looksLikeTokenError(body []byte) bool {
	return strings.Contains(strings.ToLower(string(body)), "token")
}

// invoke executes one named operation with a bounded retry loop. A response
// body matching the token heuristic triggers a token refresh before the next
// attempt; a transport error retries without one. Total attempts are
// maxRetries+1 and the counter is local to this call.
func (c *Client) invoke(ctx context.Context, method string, params map[string]string) (map[string]any, error) {
	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		tokens, err := c.currentTokens(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build %s request: %w", method, err)
		}
		req.URL.RawQuery = c.signedQuery(method, params, tokens).Encode()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				c.logger.Warn().Err(err).Str("method", method).Int("attempt", attempt).
					Msg("transport failure, retrying")
				continue
			}
			return nil, &NetworkError{Err: err}
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if attempt < c.maxRetries {
				c.logger.Warn().Err(readErr).Str("method", method).Int("attempt", attempt).
					Msg("failed reading response body, retrying")
				continue
			}
			return nil, &NetworkError{Err: readErr}
		}

		if resp.StatusCode == http.StatusOK {
			var payload map[string]any
			if err := json.Unmarshal(body, &payload); err != nil {
				return nil, fmt.Errorf("decode %s response: %w", method, err)
			}
			return payload, nil
		}

		if looksLikeTokenError(body) && attempt < c.maxRetries {
			c.logger.Warn().Str("method", method).Int("status", resp.StatusCode).Int("attempt", attempt).
				Msg("token error response, refreshing tokens")
			if err := c.refreshTokens(ctx); err != nil {
				return nil, err
			}
			continue
		}

		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
}

// signedQuery merges the OAuth protocol fields with caller params and signs
// the whole set.
func (c *Client) signedQuery(method string, params map[string]string, tokens *domain.TokenPair) url.Values {
	merged := map[string]string{
		"method":                 method,
		"format":                 "json",
		"oauth_consumer_key":     c.consumerKey,
		"oauth_token":            tokens.OAuthToken,
		"oauth_timestamp":        strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_nonce":            nonce(),
		"oauth_signature_method": signatureMethod,
		"oauth_version":          oauthVersion,
	}
	for k, v := range params {
		merged[k] = v
	}
	merged["oauth_signature"] = Sign(http.MethodGet, c.baseURL, merged, c.consumerSecret, tokens.OAuthTokenSecret)

	q := make(url.Values, len(merged))
	for k, v := range merged {
		q.Set(k, v)
	}
	return q
}

// nonce derives a per-request value from the nanosecond clock. Unique per
// call is all the platform requires; it need not be cryptographically random.
func nonce() string {
	sum := md5.Sum([]byte(strconv.FormatInt(time.Now().UnixNano(), 10)))
	return hex.EncodeToString(sum[:])
}

// currentTokens returns the cached pair, loading through the provider when
// none is held yet.
func (c *Client) currentTokens(ctx context.Context) (*domain.TokenPair, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens != nil {
		return c.tokens, nil
	}
	return c.loadTokensLocked(ctx)
}

// refreshTokens drops the cached pair and reloads it.
func (c *Client) refreshTokens(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = nil
	_, err := c.loadTokensLocked(ctx)
	return err
}

func (c *Client) loadTokensLocked(ctx context.Context) (*domain.TokenPair, error) {
	pair, err := c.provider.Tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	if pair == nil || pair.OAuthToken == "" {
		pair, err = c.provider.Authenticate(ctx)
		if err != nil {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
	}
	c.tokens = pair
	return pair, nil
}

// GetProfile fetches the authenticated user's weight profile.
func (c *Client) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	payload, err := c.invoke(ctx, "profile.get", nil)
	if err != nil {
		return nil, err
	}
	profile, ok := payload["profile"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing profile field", domain.ErrMalformedPayload)
	}
	return domain.ParseUserProfile(profile)
}

// GetFoodEntries fetches one day's food entries. The operation indexes days
// as integer offsets from the epoch, not as date strings.
func (c *Client) GetFoodEntries(ctx context.Context, date string) (map[string]any, error) {
	day, err := domain.ParseDay(date)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, "food_entries.get.v2", map[string]string{
		"date": strconv.Itoa(domain.DayIndex(day)),
	})
}

// GetExercises fetches exercise data, optionally filtered to one date. The
// filter is passed through as a plain date string; an empty date omits it.
func (c *Client) GetExercises(ctx context.Context, date string) (map[string]any, error) {
	var params map[string]string
	if date != "" {
		if _, err := domain.ParseDay(date); err != nil {
			return nil, err
		}
		params = map[string]string{"date": date}
	}
	return c.invoke(ctx, "exercises.get", params)
}

// SearchFoods runs a free-text food search.
func (c *Client) SearchFoods(ctx context.Context, query string, maxResults int) (map[string]any, error) {
	return c.invoke(ctx, "foods.search", map[string]string{
		"search_expression": query,
		"max_results":       strconv.Itoa(maxResults),
	})
}

// GetMonthlyFoodEntries fetches a whole month of entries in one call. Any
// date within the month selects it.
func (c *Client) GetMonthlyFoodEntries(ctx context.Context, date string) (map[string]any, error) {
	day, err := domain.ParseDay(date)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, "food_entries.get_month", map[string]string{
		"date": strconv.Itoa(domain.DayIndex(day)),
	})
}
