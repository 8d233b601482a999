package fatsecret

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldshrine/calorista/internal/domain"
)

// fakeProvider counts provider calls and hands out numbered tokens so tests
// can observe refreshes.
type fakeProvider struct {
	tokenCalls int
	authCalls  int
	pair       *domain.TokenPair
}

func (f *fakeProvider) Tokens(ctx context.Context) (*domain.TokenPair, error) {
	f.tokenCalls++
	return f.pair, nil
}

func (f *fakeProvider) Authenticate(ctx context.Context) (*domain.TokenPair, error) {
	f.authCalls++
	f.pair = &domain.TokenPair{OAuthToken: "fresh-token", OAuthTokenSecret: "fresh-secret"}
	return f.pair, nil
}

func newTestClient(t *testing.T, serverURL string, provider domain.TokenProvider) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		BaseURL:        serverURL,
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		MaxRetries:     2,
	}, provider, zerolog.Nop())
}

func TestInvoke_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "profile.get", q.Get("method"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "ck", q.Get("oauth_consumer_key"))
		assert.Equal(t, "stored-token", q.Get("oauth_token"))
		assert.Equal(t, "HMAC-SHA1", q.Get("oauth_signature_method"))
		assert.Equal(t, "1.0", q.Get("oauth_version"))
		assert.NotEmpty(t, q.Get("oauth_timestamp"))
		assert.NotEmpty(t, q.Get("oauth_nonce"))
		assert.NotEmpty(t, q.Get("oauth_signature"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"profile":{"goal_weight_kg":"70","height_cm":"180","height_measure":"Cm","last_weight_kg":"74.5","weight_measure":"Kg"}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "stored-token", OAuthTokenSecret: "stored-secret"}}
	client := newTestClient(t, server.URL, provider)

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 74.5, profile.LastWeightKG)
	assert.Equal(t, 1, provider.tokenCalls)
	assert.Equal(t, 0, provider.authCalls)
}

func TestInvoke_RefreshOnTokenErrorThenSuccess(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Invalid or expired Token"}}`))
			return
		}
		w.Write([]byte(`{"exercises":{}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "stale", OAuthTokenSecret: "stale-secret"}}
	client := newTestClient(t, server.URL, provider)

	payload, err := client.GetExercises(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, payload, "exercises")

	// one provider load up front plus exactly one refresh per failed attempt
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, provider.tokenCalls)
}

func TestInvoke_TokenErrorExhaustsRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid token"))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "stale", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	_, err := client.GetExercises(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Body, "token")

	// maxRetries=2 means three total attempts
	assert.Equal(t, 3, calls)
}

func TestInvoke_NonTokenErrorFailsImmediately(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("service temporarily unavailable"))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	_, err := client.GetExercises(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, provider.tokenCalls)
}

func TestInvoke_NetworkErrorRetriedWithoutRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // connection refused from here on

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, serverURL, provider)

	_, err := client.GetExercises(context.Background(), "")
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, netErr.Unwrap())

	// transport failures never force a token refresh
	assert.Equal(t, 1, provider.tokenCalls)
	assert.Equal(t, 0, provider.authCalls)
}

func TestInvoke_AuthenticatesWhenNoStoredTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fresh-token", r.URL.Query().Get("oauth_token"))
		w.Write([]byte(`{"exercises":{}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{} // no stored pair
	client := newTestClient(t, server.URL, provider)

	_, err := client.GetExercises(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.authCalls)
}

func TestGetFoodEntries_SendsDayIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "food_entries.get.v2", r.URL.Query().Get("method"))
		assert.Equal(t, "20089", r.URL.Query().Get("date"))
		w.Write([]byte(`{"food_entries":null}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	_, err := client.GetFoodEntries(context.Background(), "2025-01-01")
	require.NoError(t, err)
}

func TestGetFoodEntries_RejectsBadDate(t *testing.T) {
	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, "http://127.0.0.1:0", provider)

	_, err := client.GetFoodEntries(context.Background(), "01/02/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestGetExercises_DateFilter(t *testing.T) {
	var gotDate string
	var hasDate bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "exercises.get", r.URL.Query().Get("method"))
		gotDate = r.URL.Query().Get("date")
		hasDate = r.URL.Query().Has("date")
		w.Write([]byte(`{"exercises":{}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	// date filter is the plain date string, not a day index
	_, err := client.GetExercises(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", gotDate)

	// no filter param at all when unset
	_, err = client.GetExercises(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, hasDate)
}

func TestSearchFoods_Params(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "foods.search", r.URL.Query().Get("method"))
		assert.Equal(t, "greek yogurt", r.URL.Query().Get("search_expression"))
		assert.Equal(t, "50", r.URL.Query().Get("max_results"))
		w.Write([]byte(`{"foods":{"food":[]}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	_, err := client.SearchFoods(context.Background(), "greek yogurt", 50)
	require.NoError(t, err)
}

func TestGetMonthlyFoodEntries_SendsDayIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "food_entries.get_month", r.URL.Query().Get("method"))
		assert.Equal(t, "20157", r.URL.Query().Get("date"))
		w.Write([]byte(`{"month":{}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	_, err := client.GetMonthlyFoodEntries(context.Background(), "2025-03-10")
	require.NoError(t, err)
}

func TestGetProfile_MissingProfileField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something_else":{}}`))
	}))
	defer server.Close()

	provider := &fakeProvider{pair: &domain.TokenPair{OAuthToken: "t", OAuthTokenSecret: "s"}}
	client := newTestClient(t, server.URL, provider)

	_, err := client.GetProfile(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestLooksLikeTokenError(t *testing.T) {
	assert.True(t, looksLikeTokenError([]byte("Invalid or expired TOKEN")))
	assert.True(t, looksLikeTokenError([]byte(`{"error":"missing oauth_token"}`)))
	assert.False(t, looksLikeTokenError([]byte("rate limit exceeded")))
	assert.False(t, looksLikeTokenError(nil))
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &NetworkError{Err: cause}
	assert.ErrorIs(t, err, cause)
}
