package httpservice

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/clear-ness/postcounters/model"
)

const (
	ConnectTimeout = 3 * time.Second
)

var defaultUserAgent = "postcounters/" + model.CurrentVersion

type PostCountersTransport struct {
	Transport http.RoundTripper
}

func (t *PostCountersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", defaultUserAgent)
	otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
	return t.Transport.RoundTrip(req)
}

func NewTransport() http.RoundTripper {
	dialer := &net.Dialer{
		Timeout:   ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &PostCountersTransport{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   ConnectTimeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
