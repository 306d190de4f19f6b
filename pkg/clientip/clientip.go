// Package clientip extracts the requesting client's network identity from
// an HTTP request, preferring forwarding headers over the peer address.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

const (
	headerXForwardedFor = "X-Forwarded-For"
	headerXRealIP       = "X-Real-IP"

	unknown = "unknown"
)

// FromRequest returns the client IP and port as strings for display.
//
// The IP is taken from the "X-Real-IP" header, then the first entry of
// "X-Forwarded-For", then the transport peer address. Forwarding headers
// carry no port, so the port always comes from the peer address.
func FromRequest(request *http.Request) (ip string, port string) {
	ip = unknown
	port = unknown

	host, peerPort, err := net.SplitHostPort(request.RemoteAddr)
	if err == nil {
		ip = host
		port = peerPort
	}

	if realIP := strings.TrimSpace(request.Header.Get(headerXRealIP)); realIP != "" {
		return realIP, port
	}

	if xff := request.Header.Get(headerXForwardedFor); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first, port
		}
	}

	return ip, port
}
