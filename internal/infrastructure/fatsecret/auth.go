package fatsecret

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coldshrine/calorista/internal/domain"
)

const (
	// DefaultRequestTokenURL is the first leg of the OAuth 1.0a flow.
	DefaultRequestTokenURL = "https://authentication.fatsecret.com/oauth/request_token"
	// DefaultAuthorizeURL is where the user grants access.
	DefaultAuthorizeURL = "https://authentication.fatsecret.com/oauth/authorize"
	// DefaultAccessTokenURL exchanges the verified request token.
	DefaultAccessTokenURL = "https://authentication.fatsecret.com/oauth/access_token"
)

// AuthConfig carries the construction-time settings of an Authenticator.
// Empty URLs fall back to the platform defaults.
type AuthConfig struct {
	ConsumerKey     string
	ConsumerSecret  string
	RequestTokenURL string
	AuthorizeURL    string
	AccessTokenURL  string
	CallbackAddr    string // listen address of the local callback server
	CallbackURL     string // URL the platform redirects the browser to
}

// Authenticator runs the three-legged OAuth 1.0a flow and persists the
// resulting access tokens. It is the production domain.TokenProvider.
type Authenticator struct {
	cfg        AuthConfig
	store      *TokenStore
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ domain.TokenProvider = (*Authenticator)(nil)

// NewAuthenticator creates an authenticator backed by the given token store.
func NewAuthenticator(cfg AuthConfig, store *TokenStore, logger zerolog.Logger) *Authenticator {
	if cfg.RequestTokenURL == "" {
		cfg.RequestTokenURL = DefaultRequestTokenURL
	}
	if cfg.AuthorizeURL == "" {
		cfg.AuthorizeURL = DefaultAuthorizeURL
	}
	if cfg.AccessTokenURL == "" {
		cfg.AccessTokenURL = DefaultAccessTokenURL
	}
	if cfg.CallbackAddr == "" {
		cfg.CallbackAddr = ":8080"
	}
	if cfg.CallbackURL == "" {
		cfg.CallbackURL = "http://localhost:8080/callback"
	}
	return &Authenticator{
		cfg:        cfg,
		store:      store,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With().Str("component", "fatsecret-auth").Logger(),
	}
}

// Tokens returns the saved pair, or (nil, nil) when none is stored.
func (a *Authenticator) Tokens(ctx context.Context) (*domain.TokenPair, error) {
	return a.store.Tokens(), nil
}

// Authenticate completes the three-legged flow: request token, interactive
// authorization captured by a local callback server, access token exchange.
// A saved pair short-circuits the flow.
func (a *Authenticator) Authenticate(ctx context.Context) (*domain.TokenPair, error) {
	if pair := a.store.Tokens(); pair != nil {
		a.logger.Info().Msg("using saved access tokens")
		return pair, nil
	}

	reqToken, err := a.requestToken(ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := a.captureVerifier(ctx, reqToken.OAuthToken)
	if err != nil {
		return nil, err
	}

	access, err := a.accessToken(ctx, reqToken, verifier)
	if err != nil {
		return nil, err
	}

	if err := a.store.Save(access); err != nil {
		return nil, err
	}
	a.logger.Info().Msg("access tokens saved")
	return access, nil
}

// Logout clears the saved pair.
func (a *Authenticator) Logout() error {
	return a.store.Clear()
}

// requestToken performs the signed request_token call.
func (a *Authenticator) requestToken(ctx context.Context) (*domain.TokenPair, error) {
	params := a.oauthParams(map[string]string{
		"oauth_callback": a.cfg.CallbackURL,
	})
	params["oauth_signature"] = Sign(http.MethodGet, a.cfg.RequestTokenURL, params, a.cfg.ConsumerSecret, "")

	pair, err := a.signedGet(ctx, a.cfg.RequestTokenURL, params)
	if err != nil {
		return nil, fmt.Errorf("request token: %w", err)
	}
	return pair, nil
}

// accessToken exchanges the verified request token, signing with the request
// token secret.
func (a *Authenticator) accessToken(ctx context.Context, reqToken *domain.TokenPair, verifier string) (*domain.TokenPair, error) {
	params := a.oauthParams(map[string]string{
		"oauth_token":    reqToken.OAuthToken,
		"oauth_verifier": verifier,
	})
	params["oauth_signature"] = Sign(http.MethodGet, a.cfg.AccessTokenURL, params, a.cfg.ConsumerSecret, reqToken.OAuthTokenSecret)

	pair, err := a.signedGet(ctx, a.cfg.AccessTokenURL, params)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	return pair, nil
}

func (a *Authenticator) oauthParams(extra map[string]string) map[string]string {
	params := map[string]string{
		"oauth_consumer_key":     a.cfg.ConsumerKey,
		"oauth_nonce":            nonce(),
		"oauth_signature_method": signatureMethod,
		"oauth_timestamp":        strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_version":          oauthVersion,
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}

func (a *Authenticator) signedGet(ctx context.Context, endpoint string, params map[string]string) (*domain.TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := make(url.Values, len(params))
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return parseTokenResponse(string(body))
}

// parseTokenResponse parses the k=v&k=v body of the token endpoints.
func parseTokenResponse(body string) (*domain.TokenPair, error) {
	fields := make(map[string]string)
	for _, pair := range strings.Split(body, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		fields[k] = v
	}
	if fields["oauth_token"] == "" || fields["oauth_token_secret"] == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrMalformedPayload, body)
	}
	return &domain.TokenPair{
		OAuthToken:       fields["oauth_token"],
		OAuthTokenSecret: fields["oauth_token_secret"],
	}, nil
}

// captureVerifier starts a local callback server, prints the authorize URL
// for the user to visit, and blocks until the platform redirects the browser
// back with the verifier.
func (a *Authenticator) captureVerifier(ctx context.Context, requestToken string) (string, error) {
	verifiers := make(chan string, 1)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/callback", func(c *gin.Context) {
		c.String(http.StatusOK, "Authentication complete. You may close this window.")
		select {
		case verifiers <- c.Query("oauth_verifier"):
		default: // duplicate redirect, first one wins
		}
	})

	srv := &http.Server{Addr: a.cfg.CallbackAddr, Handler: router}
	serveErrs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrs <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authorizeURL := fmt.Sprintf("%s?oauth_token=%s&oauth_callback=%s",
		a.cfg.AuthorizeURL, url.QueryEscape(requestToken), url.QueryEscape(a.cfg.CallbackURL))
	a.logger.Info().Str("url", authorizeURL).Msg("waiting for authorization, visit this URL")
	fmt.Printf("\nPlease visit this URL to authorize:\n%s\n", authorizeURL)

	select {
	case verifier := <-verifiers:
		if verifier == "" {
			return "", fmt.Errorf("callback carried no oauth_verifier")
		}
		return verifier, nil
	case err := <-serveErrs:
		return "", fmt.Errorf("callback server: %w", err)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
