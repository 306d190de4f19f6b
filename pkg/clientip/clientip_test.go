package clientip

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		wantIP     string
		wantPort   string
	}{
		{
			name:       "peer address only",
			remoteAddr: "192.0.2.1:1234",
			wantIP:     "192.0.2.1",
			wantPort:   "1234",
		},
		{
			name:       "x-real-ip wins",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.5"},
			wantIP:     "203.0.113.5",
			wantPort:   "1234",
		},
		{
			name:       "first forwarded-for entry",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			wantIP:     "203.0.113.9",
			wantPort:   "1234",
		},
		{
			name:       "unsplittable peer address",
			remoteAddr: "garbage",
			wantIP:     "unknown",
			wantPort:   "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			ip, port := FromRequest(req)
			assert.Equal(t, tt.wantIP, ip)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}
