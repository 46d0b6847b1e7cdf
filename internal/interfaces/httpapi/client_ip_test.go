package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientIP(t *testing.T) {
	cases := []struct {
		name    string
		forward string
		realIP  string
		remote  string
		want    string
	}{
		{name: "first forwarded hop", forward: " 203.0.113.7 , 10.0.0.1", remote: "10.0.0.2:5000", want: "203.0.113.7"},
		{name: "bad forwarded falls through", forward: "unknown", realIP: "198.51.100.4", want: "198.51.100.4"},
		{name: "remote addr with port", remote: "192.0.2.10:41234", want: "192.0.2.10"},
		{name: "ipv6 remote", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "mapped ipv4", realIP: "::ffff:192.0.2.1", want: "192.0.2.1"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/fixtures/upcoming", nil)
			r.RemoteAddr = tc.remote
			if tc.forward != "" {
				r.Header.Set("X-Forwarded-For", tc.forward)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}
			assert.Equal(t, tc.want, resolveClientIP(r))
		})
	}
}
