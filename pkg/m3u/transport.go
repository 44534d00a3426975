package m3u

import "net/http"

// HeaderMapTransport sets a fixed header map on every outgoing request
type HeaderMapTransport struct {
	Headers map[string]string
	Base    http.RoundTripper
}

func (t *HeaderMapTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if len(t.Headers) == 0 {
		return base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	for k, v := range t.Headers {
		r.Header.Set(k, v)
	}
	return base.RoundTrip(r)
}
