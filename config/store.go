package config

import (
	"github.com/clear-ness/postcounters/model"
)

// Listener is called with the previous and the freshly loaded config after every reload.
type Listener func(oldConfig *model.Config, newConfig *model.Config)

type Store interface {
	Get() *model.Config
	AddListener(listener Listener) string
	RemoveListener(id string)
	Close() error
}
