package testlib

import (
	"flag"
	"log"
	"os"
	"testing"

	"github.com/clear-ness/postcounters/utils"
)

type MainHelper struct {
	status int
}

func (h *MainHelper) Main(m *testing.M) {
	h.status = m.Run()
}

func (h *MainHelper) Close() error {
	if r := recover(); r != nil {
		log.Fatalln(r)
	}

	os.Exit(h.status)

	return nil
}

type HelperOptions struct {
	EnableTranslations bool
}

func NewMainHelperWithOptions(options *HelperOptions) *MainHelper {
	var mainHelper MainHelper
	flag.Parse()

	if options != nil && options.EnableTranslations {
		if err := utils.TranslationsPreInit(); err != nil {
			panic("failed to load translations: " + err.Error())
		}
	}

	return &mainHelper
}
