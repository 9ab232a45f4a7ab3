package httpservice

import (
	"net/http"
	"time"

	"github.com/clear-ness/postcounters/model"
)

type ConfigService interface {
	Config() *model.Config
}

type HTTPService interface {
	MakeClient() *http.Client
	MakeTransport() http.RoundTripper
}

type HTTPServiceImpl struct {
	configService ConfigService
}

func MakeHTTPService(configService ConfigService) HTTPService {
	return &HTTPServiceImpl{
		configService,
	}
}

// MakeClient builds a client whose overall timeout follows ClientSettings.RequestTimeoutMillis.
// Zero disables the client side timeout and leaves it to the caller's context.
func (h *HTTPServiceImpl) MakeClient() *http.Client {
	return &http.Client{
		Transport: h.MakeTransport(),
		Timeout:   time.Duration(*h.configService.Config().ClientSettings.RequestTimeoutMillis) * time.Millisecond,
	}
}

func (h *HTTPServiceImpl) MakeTransport() http.RoundTripper {
	return NewTransport()
}
