package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	require.Nil(t, cfg.IsValid())
	assert.Equal(t, ANIMATION_SETTINGS_DEFAULT_DURATION_MILLIS, *cfg.AnimationSettings.DurationMillis)
	assert.Equal(t, ANIMATION_SETTINGS_DEFAULT_PULSE_MILLIS, *cfg.AnimationSettings.PulseMillis)
	assert.Equal(t, CLIENT_SETTINGS_DEFAULT_CSRF_HEADER_NAME, *cfg.ClientSettings.CsrfHeaderName)
	assert.True(t, *cfg.ClientSettings.DisableLikeWhileInFlight)

	clone := cfg.Clone()
	*clone.AnimationSettings.DurationMillis = 1
	assert.Equal(t, ANIMATION_SETTINGS_DEFAULT_DURATION_MILLIS, *cfg.AnimationSettings.DurationMillis, "clone must not share pointers")
}

func TestConfigIsValid(t *testing.T) {
	for name, tc := range map[string]struct {
		update     func(cfg *Config)
		expectedId string
	}{
		"relative site url":        {func(cfg *Config) { *cfg.ClientSettings.SiteURL = "/blog" }, "model.config.is_valid.site_url.app_error"},
		"ftp site url":             {func(cfg *Config) { *cfg.ClientSettings.SiteURL = "ftp://blog" }, "model.config.is_valid.site_url.app_error"},
		"negative timeout":         {func(cfg *Config) { *cfg.ClientSettings.RequestTimeoutMillis = -1 }, "model.config.is_valid.request_timeout.app_error"},
		"empty cookie name":        {func(cfg *Config) { *cfg.ClientSettings.CsrfCookieName = " " }, "model.config.is_valid.csrf_cookie_name.app_error"},
		"empty header name":        {func(cfg *Config) { *cfg.ClientSettings.CsrfHeaderName = "" }, "model.config.is_valid.csrf_header_name.app_error"},
		"negative duration":        {func(cfg *Config) { *cfg.AnimationSettings.DurationMillis = -1 }, "model.config.is_valid.animation_duration.app_error"},
		"zero frame":               {func(cfg *Config) { *cfg.AnimationSettings.FrameMillis = 0 }, "model.config.is_valid.animation_frame.app_error"},
		"negative pulse":           {func(cfg *Config) { *cfg.AnimationSettings.PulseMillis = -5 }, "model.config.is_valid.animation_pulse.app_error"},
		"unknown log level":        {func(cfg *Config) { *cfg.LogSettings.ConsoleLevel = "LOUD" }, "model.config.is_valid.log_level.app_error"},
		"tracing without endpoint": {func(cfg *Config) { *cfg.TracingSettings.Enable = true }, "model.config.is_valid.tracing_endpoint.app_error"},
		"file without path":        {func(cfg *Config) { *cfg.LogSettings.EnableFile = true; *cfg.LogSettings.FileLocation = "" }, "model.config.is_valid.log_file_location.app_error"},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tc.update(cfg)

			err := cfg.IsValid()
			require.NotNil(t, err)
			assert.Equal(t, tc.expectedId, err.Id)
		})
	}
}
