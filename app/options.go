package app

import (
	"net/url"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	"github.com/clear-ness/postcounters/config"
	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/services/httpservice"
)

type Option func(a *App) error

// Config loads the JSON config at path. With watch set the file is reloaded on every change.
func Config(path string, watch bool) Option {
	return func(a *App) error {
		configStore, err := config.NewFileStore(path)
		if err != nil {
			return errors.Wrap(err, "failed to apply Config option")
		}

		if watch {
			if err := configStore.StartWatching(); err != nil {
				configStore.Close()
				return errors.Wrap(err, "failed to watch config")
			}
		}

		a.configStore = configStore
		return nil
	}
}

func ConfigStore(configStore config.Store) Option {
	return func(a *App) error {
		a.configStore = configStore
		return nil
	}
}

// SiteURL points the API client at siteURL instead of ClientSettings.SiteURL. Empty keeps the configured one.
func SiteURL(siteURL string) Option {
	return func(a *App) error {
		if siteURL == "" {
			return nil
		}

		u, err := url.Parse(siteURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.Errorf("invalid site url %q", siteURL)
		}

		a.siteURLOverride = siteURL
		return nil
	}
}

func LoggerOverride(logger *mlog.Logger) Option {
	return func(a *App) error {
		a.Log = logger
		return nil
	}
}

func ClockOverride(clk clock.Clock) Option {
	return func(a *App) error {
		a.Clock = clk
		return nil
	}
}

func TracerProviderOverride(tp trace.TracerProvider) Option {
	return func(a *App) error {
		a.TracerProvider = tp
		return nil
	}
}

func HTTPServiceOverride(override httpservice.HTTPService) Option {
	return func(a *App) error {
		a.HTTPService = override
		return nil
	}
}
