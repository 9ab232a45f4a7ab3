package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clear-ness/postcounters/model"
)

func TestNew(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	defer a.Shutdown()

	require.NotNil(t, a.Log)
	require.NotNil(t, a.Clock)
	require.NotNil(t, a.HTTPService)
	assert.Equal(t, model.CLIENT_SETTINGS_DEFAULT_SITE_URL, *a.Config().ClientSettings.SiteURL)
}

func TestNewWithOptions(t *testing.T) {
	mock := clock.NewMock()

	a, err := New(ClockOverride(mock))
	require.NoError(t, err)
	defer a.Shutdown()

	assert.Equal(t, mock, a.Clock)
}

func TestConfigOption(t *testing.T) {
	dir, err := ioutil.TempDir("", "postcounters-app")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"ClientSettings": {"SiteURL": "https://blog.example.com/", "CsrfHeaderName": "X-Token"}}`), 0600))

	a, err := New(Config(path, false))
	require.NoError(t, err)
	defer a.Shutdown()

	client := a.NewClient("abc")
	assert.Equal(t, "https://blog.example.com", client.Url)
	assert.Equal(t, "https://blog.example.com/api", client.ApiUrl)
	assert.Equal(t, "X-Token", client.CsrfHeader)
	assert.Equal(t, "abc", client.CsrfToken)
	assert.Equal(t, time.Duration(model.CLIENT_SETTINGS_DEFAULT_REQUEST_TIMEOUT_MILLIS)*time.Millisecond, client.HttpClient.Timeout)

	t.Run("invalid config", func(t *testing.T) {
		require.NoError(t, ioutil.WriteFile(path, []byte(`{"ClientSettings": {"SiteURL": "not a url"}}`), 0600))

		_, err := New(Config(path, false))
		require.Error(t, err)
	})
}

func TestSiteURLOption(t *testing.T) {
	a, err := New(SiteURL("http://localhost:9000/"))
	require.NoError(t, err)
	defer a.Shutdown()

	assert.Equal(t, "http://localhost:9000/api", a.NewClient("").ApiUrl)

	_, err = New(SiteURL("localhost:9000"))
	require.Error(t, err)
}

func TestCookieCredential(t *testing.T) {
	th := SetupWithConfig(t, func(c *model.Config) {
		*c.ClientSettings.CsrfCookieName = "XSRF-TOKEN"
	})
	defer th.TearDown()

	assert.Equal(t, "xyz", th.App.CookieCredential("csrftoken=abc; XSRF-TOKEN=xyz").CSRFToken())
}
