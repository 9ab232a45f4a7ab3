package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clear-ness/postcounters/config"
	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/model"
	"github.com/clear-ness/postcounters/testlib"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type TestHelper struct {
	App         *App
	Blog        *testlib.FakeBlog
	ConfigStore *config.MemoryStore
	LogBuffer   *syncBuffer

	PostId      string
	ViewCounter *MemoryCounter
	LikeCounter *MemoryCounter
	LikeIcon    *MemoryIcon

	pages []*CounterSync
}

func Setup(tb testing.TB) *TestHelper {
	return SetupWithConfig(tb, nil)
}

// SetupWithConfig points a fresh App at a fake blog. updateConfig may adjust the settings
// before the App is built.
func SetupWithConfig(tb testing.TB, updateConfig func(cfg *model.Config)) *TestHelper {
	blog := testlib.NewFakeBlog()

	cfg := &model.Config{}
	cfg.SetDefaults()
	*cfg.ClientSettings.SiteURL = blog.URL()
	*cfg.AnimationSettings.DurationMillis = 60
	*cfg.AnimationSettings.FrameMillis = 5
	*cfg.AnimationSettings.PulseMillis = 30
	if updateConfig != nil {
		updateConfig(cfg)
	}

	configStore, err := config.NewMemoryStore(cfg)
	require.NoError(tb, err)

	logBuffer := &syncBuffer{}

	a, err := New(
		ConfigStore(configStore),
		LoggerOverride(mlog.NewWriterLogger(logBuffer, mlog.LevelDebug)),
	)
	require.NoError(tb, err)

	return &TestHelper{
		App:         a,
		Blog:        blog,
		ConfigStore: configStore,
		LogBuffer:   logBuffer,
		PostId:      "post-" + model.NewId(),
		ViewCounter: NewMemoryCounter(0),
		LikeCounter: NewMemoryCounter(0),
		LikeIcon:    NewMemoryIcon(false),
	}
}

func (th *TestHelper) Page(credential CredentialProvider) PageContext {
	return PageContext{
		PostId:      th.PostId,
		ViewCounter: th.ViewCounter,
		LikeCounter: th.LikeCounter,
		LikeIcon:    th.LikeIcon,
		Credential:  credential,
	}
}

func (th *TestHelper) NewCounterSync(tb testing.TB, page PageContext) *CounterSync {
	tb.Helper()

	s, appErr := th.App.NewCounterSync(page)
	require.Nil(tb, appErr)
	th.pages = append(th.pages, s)

	return s
}

func (th *TestHelper) WaitForValue(tb testing.TB, counter *MemoryCounter, expected int) {
	tb.Helper()

	require.Eventually(tb, func() bool {
		return counter.Value() == expected
	}, 2*time.Second, 5*time.Millisecond, "counter never reached %d", expected)
}

func (th *TestHelper) LogContains(tb testing.TB, substrings ...string) {
	tb.Helper()

	logs := th.LogBuffer.String()
	for _, s := range substrings {
		require.Truef(tb, strings.Contains(logs, s), "expected %q in logs:\n%s", s, logs)
	}
}

func (th *TestHelper) TearDown() {
	for _, page := range th.pages {
		page.Close()
	}
	th.App.Shutdown()
	th.Blog.Close()
}

func CheckErrorId(tb testing.TB, appErr *model.AppError, id string) {
	tb.Helper()

	require.NotNil(tb, appErr, "expected error %s", id)
	require.Equal(tb, id, appErr.Id)
}
