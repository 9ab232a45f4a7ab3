package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/clear-ness/postcounters/app"
	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/services/tracing"
	"github.com/clear-ness/postcounters/utils"
)

// initApp builds the App from the command line flags. The returned shutdown flushes pending
// spans and releases the App.
func initApp(watchConfig bool) (*app.App, func(), error) {
	if err := utils.TranslationsPreInit(); err != nil {
		return nil, nil, errors.Wrap(err, "unable to load translations")
	}

	a, err := app.New(
		app.Config(viper.GetString("config"), watchConfig),
		app.SiteURL(viper.GetString("site_url")),
	)
	if err != nil {
		return nil, nil, err
	}

	mlog.InitGlobalLogger(a.Log)
	mlog.RedirectStdLog(a.Log)

	shutdownTracing, err := tracing.Setup(context.Background(), &a.Config().TracingSettings)
	if err != nil {
		a.Shutdown()
		return nil, nil, err
	}

	shutdown := func() {
		if err := shutdownTracing(context.Background()); err != nil {
			a.Log.Warn("Failed to flush traces", mlog.Err(err))
		}
		a.Shutdown()
	}

	return a, shutdown, nil
}

func credentialFromFlags(a *app.App) app.CredentialProvider {
	if token := viper.GetString("csrf_token"); token != "" {
		return app.StaticCredential(token)
	}

	return a.CookieCredential(viper.GetString("cookie"))
}

func postIdFromFlags() (string, error) {
	postId := viper.GetString("post_id")
	if postId == "" {
		return "", errors.New("--post-id is required")
	}
	return postId, nil
}
