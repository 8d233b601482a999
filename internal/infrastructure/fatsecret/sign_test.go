package fatsecret

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://platform.fatsecret.com/rest/server.api"

func TestSign_KnownVector(t *testing.T) {
	params := map[string]string{
		"method":                 "profile.get",
		"format":                 "json",
		"oauth_consumer_key":     "key",
		"oauth_nonce":            "abc123",
		"oauth_timestamp":        "1700000000",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_token":            "tok",
		"oauth_version":          "1.0",
	}

	got := Sign("GET", testBaseURL, params, "consumersecret", "tokensecret")
	assert.Equal(t, "6whW2XQZwUd6I/c1vZN8E26MEMY=", got)
}

func TestSign_ReservedCharacters(t *testing.T) {
	params := map[string]string{
		"q":       "caffe latte & cream",
		"eq":      "a=b",
		"unicode": "kött",
	}

	got := Sign("GET", testBaseURL, params, "s1", "s2")
	assert.Equal(t, "LFVjZNiZJUfiRZP+HZOJzf5buw0=", got)
}

func TestSign_Deterministic(t *testing.T) {
	params := map[string]string{
		"method": "foods.search",
		"search_expression": "oatmeal",
	}

	first := Sign("GET", testBaseURL, params, "secret", "tsecret")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Sign("GET", testBaseURL, params, "secret", "tsecret"))
	}
}

func TestSign_OrderIndependent(t *testing.T) {
	a := map[string]string{}
	a["zulu"] = "1"
	a["alpha"] = "2"
	a["mike"] = "3"

	b := map[string]string{}
	b["mike"] = "3"
	b["zulu"] = "1"
	b["alpha"] = "2"

	assert.Equal(t,
		Sign("GET", testBaseURL, a, "cs", "ts"),
		Sign("GET", testBaseURL, b, "cs", "ts"),
	)
}

func TestSign_TokenSecretChangesSignature(t *testing.T) {
	params := map[string]string{"method": "profile.get"}

	withSecret := Sign("GET", testBaseURL, params, "cs", "ts")
	withoutSecret := Sign("GET", testBaseURL, params, "cs", "")
	assert.NotEqual(t, withSecret, withoutSecret)
}

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a b", "a%20b"},
		{"a&b", "a%26b"},
		{"a=b", "a%3Db"},
		{"kött", "k%C3%B6tt"},
		{"~-._", "~-._"},
		{"100%", "100%25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := percentEncode(tt.in)
			assert.Equal(t, tt.want, got)

			// decoding the encoded form recovers the original exactly
			back, err := url.PathUnescape(got)
			require.NoError(t, err)
			assert.Equal(t, tt.in, back)
		})
	}
}
