package fatsecret

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// Sign produces the OAuth 1.0 HMAC-SHA1 signature for a request. Params are
// canonicalized by byte-lexicographic key order with every key and value
// percent-encoded, the base string is METHOD&enc(url)&enc(params), and the
// signing key is enc(consumerSecret)&enc(tokenSecret). The function is pure:
// no clock, no randomness.
func Sign(httpMethod, baseURL string, params map[string]string, consumerSecret, tokenSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(params[k]))
	}
	paramString := strings.Join(pairs, "&")

	baseString := strings.Join([]string{
		httpMethod,
		percentEncode(baseURL),
		percentEncode(paramString),
	}, "&")

	signingKey := percentEncode(consumerSecret) + "&" + percentEncode(tokenSecret)

	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// percentEncode applies RFC 3986 encoding with no characters exempted beyond
// the unreserved set. url.QueryEscape is not usable here: it encodes space as
// "+", which the signature base string must not contain.
func percentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range []byte(s) {
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}
