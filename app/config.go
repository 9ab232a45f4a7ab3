package app

import (
	"time"

	"github.com/clear-ness/postcounters/config"
	"github.com/clear-ness/postcounters/model"
)

func (a *App) Config() *model.Config {
	return a.configStore.Get()
}

func (a *App) ConfigStore() config.Store {
	return a.configStore
}

func (a *App) GetSiteURL() string {
	if a.siteURLOverride != "" {
		return a.siteURLOverride
	}
	return *a.Config().ClientSettings.SiteURL
}

// animationTiming is read on every transition so a reloaded config applies to the next one.
func (a *App) animationTiming() AnimationTiming {
	settings := a.Config().AnimationSettings
	return AnimationTiming{
		Duration: time.Duration(*settings.DurationMillis) * time.Millisecond,
		Frame:    time.Duration(*settings.FrameMillis) * time.Millisecond,
	}
}

func (a *App) pulseDuration() time.Duration {
	return time.Duration(*a.Config().AnimationSettings.PulseMillis) * time.Millisecond
}
