package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clear-ness/postcounters/model"
)

func setupConfigFile(t *testing.T, content string) (string, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "postcounters-config")
	require.NoError(t, err)

	path := filepath.Join(dir, "config.json")
	if content != "" {
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	}

	return path, func() { os.RemoveAll(dir) }
}

func TestFileStoreNew(t *testing.T) {
	t.Run("missing file is created with defaults", func(t *testing.T) {
		path, tearDown := setupConfigFile(t, "")
		defer tearDown()

		fs, err := NewFileStore(path)
		require.NoError(t, err)
		defer fs.Close()

		cfg := fs.Get()
		assert.Equal(t, model.CLIENT_SETTINGS_DEFAULT_SITE_URL, *cfg.ClientSettings.SiteURL)
		assert.Equal(t, model.ANIMATION_SETTINGS_DEFAULT_DURATION_MILLIS, *cfg.AnimationSettings.DurationMillis)
		assert.True(t, *cfg.ClientSettings.DisableLikeWhileInFlight)

		_, err = os.Stat(path)
		assert.NoError(t, err, "defaults should have been persisted")
	})

	t.Run("partial file gets defaults", func(t *testing.T) {
		path, tearDown := setupConfigFile(t, `{"ClientSettings": {"SiteURL": "https://blog.example.com"}}`)
		defer tearDown()

		fs, err := NewFileStore(path)
		require.NoError(t, err)
		defer fs.Close()

		assert.Equal(t, "https://blog.example.com", *fs.Get().ClientSettings.SiteURL)
		assert.Equal(t, model.CLIENT_SETTINGS_DEFAULT_CSRF_COOKIE_NAME, *fs.Get().ClientSettings.CsrfCookieName)
	})

	t.Run("invalid json", func(t *testing.T) {
		path, tearDown := setupConfigFile(t, `{"ClientSettings": `)
		defer tearDown()

		_, err := NewFileStore(path)
		require.Error(t, err)
	})

	t.Run("invalid settings", func(t *testing.T) {
		path, tearDown := setupConfigFile(t, `{"AnimationSettings": {"FrameMillis": 0}}`)
		defer tearDown()

		_, err := NewFileStore(path)
		require.Error(t, err)
	})
}

func TestFileStoreWatch(t *testing.T) {
	path, tearDown := setupConfigFile(t, `{"AnimationSettings": {"DurationMillis": 600}}`)
	defer tearDown()

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	defer fs.Close()

	changed := make(chan *model.Config, 4)
	fs.AddListener(func(oldCfg, newCfg *model.Config) {
		select {
		case changed <- newCfg:
		default:
		}
	})

	require.NoError(t, fs.StartWatching())
	require.NoError(t, fs.StartWatching(), "watching twice is a no-op")

	require.NoError(t, ioutil.WriteFile(path, []byte(`{"AnimationSettings": {"DurationMillis": 250}}`), 0600))

	select {
	case cfg := <-changed:
		assert.Equal(t, 250, *cfg.AnimationSettings.DurationMillis)
	case <-time.After(5 * time.Second):
		t.Fatal("listener was not invoked after the file changed")
	}

	assert.Equal(t, 250, *fs.Get().AnimationSettings.DurationMillis)
}

func TestMemoryStore(t *testing.T) {
	ms, err := NewMemoryStore(nil)
	require.NoError(t, err)

	var calls int
	id := ms.AddListener(func(oldCfg, newCfg *model.Config) {
		calls++
	})

	cfg := ms.Get().Clone()
	cfg.AnimationSettings.PulseMillis = model.NewInt(100)
	require.NoError(t, ms.Set(cfg))
	assert.Equal(t, 100, *ms.Get().AnimationSettings.PulseMillis)
	assert.Equal(t, 1, calls)

	ms.RemoveListener(id)
	cfg.ClientSettings.SiteURL = model.NewString("not a url")
	require.Error(t, ms.Set(cfg))
	assert.Equal(t, 1, calls)
}
