package http

import "net/http"

// headerTransport sets fixed headers on every request it forwards
type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for key, values := range t.headers {
		out.Header[key] = values
	}
	return t.transport.RoundTrip(out)
}

func withHeader(key, value string) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		h := http.Header{}
		h.Set(key, value)
		return &headerTransport{headers: h, transport: rt}
	})
}

// WithAuthToken sends token as a bearer credential. An empty token adds nothing.
func WithAuthToken(token string) Option {
	if token == "" {
		return func(*clientConfig) {}
	}
	return withHeader("Authorization", "Bearer "+token)
}

// WithUserAgent identifies the client to the remote service
func WithUserAgent(userAgent string) Option {
	return withHeader("User-Agent", userAgent)
}
