package utils

import (
	"embed"
	"encoding/json"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/clear-ness/postcounters/model"
)

//go:embed i18n/*.json
var translationFiles embed.FS

var (
	bundle       *i18n.Bundle
	localizers   = map[string]*i18n.Localizer{}
	localizersMu sync.Mutex
)

// T translates with the default locale. It is usable before TranslationsPreInit and then
// returns the message id unchanged.
var T model.TranslateFunc = func(translationID string, params map[string]interface{}) string {
	return translationID
}

// TranslationsPreInit loads the bundled translations and routes AppError messages through them.
func TranslationsPreInit() error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := translationFiles.ReadDir("i18n")
	if err != nil {
		return errors.Wrap(err, "unable to list translation files")
	}

	for _, entry := range entries {
		data, err := translationFiles.ReadFile(path.Join("i18n", entry.Name()))
		if err != nil {
			return errors.Wrapf(err, "unable to read translation file %s", entry.Name())
		}
		if _, err := b.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return errors.Wrapf(err, "unable to parse translation file %s", entry.Name())
		}
	}

	localizersMu.Lock()
	bundle = b
	localizers = map[string]*i18n.Localizer{}
	localizersMu.Unlock()

	T = GetTranslationFunc(language.English.String())
	model.AppErrorInit(T)

	return nil
}

// GetTranslationFunc returns a translator for locale, falling back to the message id when
// no translation exists.
func GetTranslationFunc(locale string) model.TranslateFunc {
	return func(translationID string, params map[string]interface{}) string {
		localizer := getLocalizer(locale)
		if localizer == nil {
			return translationID
		}

		msg, err := localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    translationID,
			TemplateData: params,
		})
		if err != nil || msg == "" {
			return translationID
		}
		return msg
	}
}

func getLocalizer(locale string) *i18n.Localizer {
	localizersMu.Lock()
	defer localizersMu.Unlock()

	if bundle == nil {
		return nil
	}

	if l, ok := localizers[locale]; ok {
		return l
	}
	l := i18n.NewLocalizer(bundle, locale)
	localizers[locale] = l
	return l
}
