package app

import (
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/clear-ness/postcounters/config"
	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/model"
	"github.com/clear-ness/postcounters/services/httpservice"
)

type App struct {
	Log *mlog.Logger

	HTTPService httpservice.HTTPService

	// Clock drives every animation frame and the pulse timer.
	Clock clock.Clock

	TracerProvider trace.TracerProvider

	configStore      config.Store
	configListenerId string

	siteURLOverride string
}

func New(options ...Option) (*App, error) {
	a := &App{}

	for _, option := range options {
		if err := option(a); err != nil {
			return nil, errors.Wrap(err, "failed to apply option")
		}
	}

	if a.configStore == nil {
		configStore, err := config.NewMemoryStore(nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create default config store")
		}
		a.configStore = configStore
	}

	if a.Log == nil {
		logger, err := mlog.NewLogger(loggerConfigFromSettings(&a.Config().LogSettings))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create logger")
		}
		a.Log = logger
		a.configListenerId = a.configStore.AddListener(func(oldCfg, newCfg *model.Config) {
			a.Log.ChangeLevels(loggerConfigFromSettings(&newCfg.LogSettings))
		})
	}

	if a.Clock == nil {
		a.Clock = clock.New()
	}

	if a.TracerProvider == nil {
		a.TracerProvider = otel.GetTracerProvider()
	}

	if a.HTTPService == nil {
		a.HTTPService = httpservice.MakeHTTPService(a)
	}

	return a, nil
}

// NewClient builds an API client for the configured site carrying csrfToken on every request.
func (a *App) NewClient(csrfToken string) *model.Client {
	settings := a.Config().ClientSettings

	client := model.NewAPIClient(a.GetSiteURL())
	client.HttpClient = a.HTTPService.MakeClient()
	client.CsrfHeader = *settings.CsrfHeaderName
	client.CsrfToken = csrfToken

	return client
}

// CookieCredential reads the CSRF token from a raw Cookie header using the configured cookie name.
func (a *App) CookieCredential(cookieHeader string) CredentialProvider {
	return CookieHeaderCredential{
		Header: cookieHeader,
		Name:   *a.Config().ClientSettings.CsrfCookieName,
	}
}

func (a *App) Shutdown() {
	if a.configListenerId != "" {
		a.configStore.RemoveListener(a.configListenerId)
	}

	if err := a.configStore.Close(); err != nil {
		a.Log.Error("failed to close config store", mlog.Err(err))
	}

	_ = a.Log.Sync()
}

func loggerConfigFromSettings(s *model.LogSettings) *mlog.LoggerConfiguration {
	return &mlog.LoggerConfiguration{
		EnableConsole: *s.EnableConsole,
		ConsoleJson:   *s.ConsoleJson,
		ConsoleLevel:  *s.ConsoleLevel,
		EnableFile:    *s.EnableFile,
		FileJson:      *s.FileJson,
		FileLevel:     *s.FileLevel,
		FileLocation:  *s.FileLocation,
	}
}
