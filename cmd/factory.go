package cmd

import (
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/coldshrine/calorista/internal/domain"
	"github.com/coldshrine/calorista/internal/infrastructure/cache"
	"github.com/coldshrine/calorista/internal/infrastructure/fatsecret"
	"github.com/coldshrine/calorista/internal/usecase"
)

// newAuthenticator wires the token store and the three-legged flow from
// config.
func newAuthenticator() *fatsecret.Authenticator {
	store := fatsecret.NewTokenStore(cfg.Auth.TokenFile)
	return fatsecret.NewAuthenticator(fatsecret.AuthConfig{
		ConsumerKey:     cfg.FatSecret.ConsumerKey,
		ConsumerSecret:  cfg.FatSecret.ConsumerSecret,
		RequestTokenURL: cfg.Auth.RequestTokenURL,
		AuthorizeURL:    cfg.Auth.AuthorizeURL,
		AccessTokenURL:  cfg.Auth.AccessTokenURL,
		CallbackAddr:    cfg.Auth.CallbackAddr,
		CallbackURL:     cfg.Auth.CallbackURL,
	}, store, logger)
}

// newAPIClient builds the signed API client over the authenticator.
func newAPIClient() *fatsecret.Client {
	return fatsecret.NewClient(fatsecret.ClientConfig{
		BaseURL:        cfg.FatSecret.BaseURL,
		ConsumerKey:    cfg.FatSecret.ConsumerKey,
		ConsumerSecret: cfg.FatSecret.ConsumerSecret,
		MaxRetries:     cfg.FatSecret.MaxRetries,
		Timeout:        cfg.FatSecret.Timeout,
	}, newAuthenticator(), logger)
}

// newEntryCache selects the configured entry cache backend.
func newEntryCache() (domain.EntryCache, error) {
	switch cfg.Cache.Type {
	case "redis":
		return cache.NewRedisEntryCache(cfg.Cache.RedisURL, logger)
	case "memory":
		logger.Warn().Msg("using in-memory cache, synced data will not persist")
		return cache.NewMemoryEntryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
	}
}

// newSyncService composes the API client with the entry cache.
func newSyncService() (*usecase.SyncService, error) {
	entryCache, err := newEntryCache()
	if err != nil {
		return nil, err
	}
	return usecase.NewSyncService(newAPIClient(), entryCache, logger), nil
}

// newTemporalClient dials the configured Temporal server.
func newTemporalClient() (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to temporal: %w", err)
	}
	return c, nil
}
