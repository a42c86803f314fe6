package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "zone:resolve:abc:48.865:2.35", cacheKey("abc", 48.865, 2.35, false))
	assert.Equal(t, "zone:resolve:abc:48.865:2.35:all", cacheKey("abc", 48.865, 2.35, true))
	// nearby points must never share a key
	assert.NotEqual(t, cacheKey("abc", 48.8580, 2.33, false), cacheKey("abc", 48.85799999, 2.33, false))
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		headers map[string]string
		remote  string
		want    string
	}{
		{"query param", "/resolve?ip=1.2.3.4", nil, "9.9.9.9:1", "1.2.3.4"},
		{"forwarded for list", "/resolve", map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.1"}, "9.9.9.9:1", "5.6.7.8"},
		{"real ip", "/resolve", map[string]string{"X-Real-IP": "5.6.7.9"}, "9.9.9.9:1", "5.6.7.9"},
		{"forwarded header", "/resolve", map[string]string{"Forwarded": `for="[2001:db8::1]";proto=https`}, "9.9.9.9:1", "2001:db8::1"},
		{"remote addr", "/resolve", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"remote ipv6", "/resolve", nil, "[2001:db8::2]:443", "2001:db8::2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.target, nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(r))
		})
	}
}
