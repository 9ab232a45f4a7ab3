package config

import (
	"github.com/clear-ness/postcounters/model"
)

// MemoryStore holds a config that never touches the filesystem. Set replaces it and notifies listeners.
type MemoryStore struct {
	commonStore
}

func NewMemoryStore(cfg *model.Config) (*MemoryStore, error) {
	ms := &MemoryStore{}
	if err := ms.Set(cfg); err != nil {
		return nil, err
	}
	return ms, nil
}

func (ms *MemoryStore) Set(cfg *model.Config) error {
	if cfg == nil {
		cfg = &model.Config{}
	}
	cfg = cfg.Clone()
	cfg.SetDefaults()
	if err := cfg.IsValid(); err != nil {
		return err
	}

	ms.configLock.Lock()
	oldCfg := ms.config
	ms.config = cfg
	ms.configLock.Unlock()

	if oldCfg != nil {
		ms.invokeListeners(oldCfg, cfg)
	}
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
