package domain

import "context"

// TokenPair holds one user's OAuth 1.0 access token and its secret.
type TokenPair struct {
	OAuthToken       string `json:"oauth_token"`
	OAuthTokenSecret string `json:"oauth_token_secret"`
}

// TokenProvider supplies access tokens on demand. Tokens returns the current
// pair, or (nil, nil) when none is stored. Authenticate runs whatever flow is
// needed to obtain a fresh pair and persists it.
type TokenProvider interface {
	Tokens(ctx context.Context) (*TokenPair, error)
	Authenticate(ctx context.Context) (*TokenPair, error)
}
