package model

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const (
	CLIENT_SETTINGS_DEFAULT_SITE_URL               = "http://localhost:8000"
	CLIENT_SETTINGS_DEFAULT_REQUEST_TIMEOUT_MILLIS = 10000
	CLIENT_SETTINGS_DEFAULT_CSRF_COOKIE_NAME       = "csrftoken"
	CLIENT_SETTINGS_DEFAULT_CSRF_HEADER_NAME       = "X-CSRFToken"

	ANIMATION_SETTINGS_DEFAULT_DURATION_MILLIS = 600
	ANIMATION_SETTINGS_DEFAULT_FRAME_MILLIS    = 16
	ANIMATION_SETTINGS_DEFAULT_PULSE_MILLIS    = 600

	LOG_SETTINGS_DEFAULT_FILE_LOCATION = "postcounters.log"

	TRACING_SETTINGS_DEFAULT_SERVICE_NAME = "postcounters"
)

type ClientSettings struct {
	SiteURL              *string
	RequestTimeoutMillis *int
	CsrfCookieName       *string
	CsrfHeaderName       *string
	// Rejects a like toggle while the previous one is still waiting for the server.
	DisableLikeWhileInFlight *bool
}

func (s *ClientSettings) SetDefaults() {
	if s.SiteURL == nil {
		s.SiteURL = NewString(CLIENT_SETTINGS_DEFAULT_SITE_URL)
	}

	if s.RequestTimeoutMillis == nil {
		s.RequestTimeoutMillis = NewInt(CLIENT_SETTINGS_DEFAULT_REQUEST_TIMEOUT_MILLIS)
	}

	if s.CsrfCookieName == nil {
		s.CsrfCookieName = NewString(CLIENT_SETTINGS_DEFAULT_CSRF_COOKIE_NAME)
	}

	if s.CsrfHeaderName == nil {
		s.CsrfHeaderName = NewString(CLIENT_SETTINGS_DEFAULT_CSRF_HEADER_NAME)
	}

	if s.DisableLikeWhileInFlight == nil {
		s.DisableLikeWhileInFlight = NewBool(true)
	}
}

func (s *ClientSettings) isValid() *AppError {
	u, err := url.Parse(*s.SiteURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewAppError("Config.IsValid", "model.config.is_valid.site_url.app_error", nil, "", http.StatusBadRequest)
	}

	if *s.RequestTimeoutMillis < 0 {
		return NewAppError("Config.IsValid", "model.config.is_valid.request_timeout.app_error", nil, "", http.StatusBadRequest)
	}

	if strings.TrimSpace(*s.CsrfCookieName) == "" {
		return NewAppError("Config.IsValid", "model.config.is_valid.csrf_cookie_name.app_error", nil, "", http.StatusBadRequest)
	}

	if strings.TrimSpace(*s.CsrfHeaderName) == "" {
		return NewAppError("Config.IsValid", "model.config.is_valid.csrf_header_name.app_error", nil, "", http.StatusBadRequest)
	}

	return nil
}

type AnimationSettings struct {
	DurationMillis *int
	FrameMillis    *int
	PulseMillis    *int
}

func (s *AnimationSettings) SetDefaults() {
	if s.DurationMillis == nil {
		s.DurationMillis = NewInt(ANIMATION_SETTINGS_DEFAULT_DURATION_MILLIS)
	}

	if s.FrameMillis == nil {
		s.FrameMillis = NewInt(ANIMATION_SETTINGS_DEFAULT_FRAME_MILLIS)
	}

	if s.PulseMillis == nil {
		s.PulseMillis = NewInt(ANIMATION_SETTINGS_DEFAULT_PULSE_MILLIS)
	}
}

func (s *AnimationSettings) isValid() *AppError {
	if *s.DurationMillis < 0 {
		return NewAppError("Config.IsValid", "model.config.is_valid.animation_duration.app_error", nil, "", http.StatusBadRequest)
	}

	if *s.FrameMillis <= 0 {
		return NewAppError("Config.IsValid", "model.config.is_valid.animation_frame.app_error", nil, "", http.StatusBadRequest)
	}

	if *s.PulseMillis < 0 {
		return NewAppError("Config.IsValid", "model.config.is_valid.animation_pulse.app_error", nil, "", http.StatusBadRequest)
	}

	return nil
}

type LogSettings struct {
	EnableConsole *bool
	ConsoleLevel  *string
	ConsoleJson   *bool
	EnableFile    *bool
	FileLevel     *string
	FileJson      *bool
	FileLocation  *string
}

func (s *LogSettings) SetDefaults() {
	if s.EnableConsole == nil {
		s.EnableConsole = NewBool(true)
	}

	if s.ConsoleLevel == nil {
		s.ConsoleLevel = NewString("WARN")
	}

	if s.ConsoleJson == nil {
		s.ConsoleJson = NewBool(false)
	}

	if s.EnableFile == nil {
		s.EnableFile = NewBool(false)
	}

	if s.FileLevel == nil {
		s.FileLevel = NewString("INFO")
	}

	if s.FileJson == nil {
		s.FileJson = NewBool(true)
	}

	if s.FileLocation == nil {
		s.FileLocation = NewString(LOG_SETTINGS_DEFAULT_FILE_LOCATION)
	}
}

func (s *LogSettings) isValid() *AppError {
	for _, level := range []string{*s.ConsoleLevel, *s.FileLevel} {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
		default:
			return NewAppError("Config.IsValid", "model.config.is_valid.log_level.app_error", map[string]interface{}{"Level": level}, "", http.StatusBadRequest)
		}
	}

	if *s.EnableFile && *s.FileLocation == "" {
		return NewAppError("Config.IsValid", "model.config.is_valid.log_file_location.app_error", nil, "", http.StatusBadRequest)
	}

	return nil
}

// TracingSettings exports OpenTelemetry spans over OTLP/HTTP. Tracing stays off unless Enable is set.
type TracingSettings struct {
	Enable      *bool
	Endpoint    *string
	ServiceName *string
}

func (s *TracingSettings) SetDefaults() {
	if s.Enable == nil {
		s.Enable = NewBool(false)
	}

	if s.Endpoint == nil {
		s.Endpoint = NewString("")
	}

	if s.ServiceName == nil {
		s.ServiceName = NewString(TRACING_SETTINGS_DEFAULT_SERVICE_NAME)
	}
}

func (s *TracingSettings) isValid() *AppError {
	if *s.Enable && *s.Endpoint == "" {
		return NewAppError("Config.IsValid", "model.config.is_valid.tracing_endpoint.app_error", nil, "", http.StatusBadRequest)
	}

	return nil
}

type Config struct {
	ClientSettings    ClientSettings
	AnimationSettings AnimationSettings
	LogSettings       LogSettings
	TracingSettings   TracingSettings
}

func (o *Config) ToJson() string {
	b, _ := json.Marshal(o)
	return string(b)
}

func (o *Config) Clone() *Config {
	var ret Config
	if err := json.Unmarshal([]byte(o.ToJson()), &ret); err != nil {
		panic(err)
	}
	return &ret
}

func (o *Config) SetDefaults() {
	o.ClientSettings.SetDefaults()
	o.AnimationSettings.SetDefaults()
	o.LogSettings.SetDefaults()
	o.TracingSettings.SetDefaults()
}

func (o *Config) IsValid() *AppError {
	if err := o.ClientSettings.isValid(); err != nil {
		return err
	}

	if err := o.AnimationSettings.isValid(); err != nil {
		return err
	}

	if err := o.LogSettings.isValid(); err != nil {
		return err
	}

	if err := o.TracingSettings.isValid(); err != nil {
		return err
	}

	return nil
}
