package config

import (
	"io"
	"sync"

	"github.com/clear-ness/postcounters/model"
)

type commonStore struct {
	configLock sync.RWMutex
	config     *model.Config

	listenersLock sync.RWMutex
	listeners     map[string]Listener
}

func (cs *commonStore) load(f io.ReadCloser, needsSave bool, validate func(*model.Config) error, persist func(*model.Config) error) error {
	loadedCfg, err := unmarshalConfig(f)
	if err != nil {
		return err
	}

	loadedCfg.SetDefaults()

	if validate != nil {
		if err = validate(loadedCfg); err != nil {
			return err
		}
	}

	cs.configLock.Lock()
	var unlockOnce sync.Once
	defer unlockOnce.Do(cs.configLock.Unlock)

	if needsSave && persist != nil {
		if err = persist(loadedCfg); err != nil {
			return err
		}
	}

	oldCfg := cs.config
	cs.config = loadedCfg
	unlockOnce.Do(cs.configLock.Unlock)

	if oldCfg != nil {
		cs.invokeListeners(oldCfg, loadedCfg)
	}

	return nil
}

func (cs *commonStore) Get() *model.Config {
	cs.configLock.RLock()
	defer cs.configLock.RUnlock()

	return cs.config
}

func (cs *commonStore) AddListener(listener Listener) string {
	cs.listenersLock.Lock()
	defer cs.listenersLock.Unlock()

	if cs.listeners == nil {
		cs.listeners = map[string]Listener{}
	}

	id := model.NewId()
	cs.listeners[id] = listener
	return id
}

func (cs *commonStore) RemoveListener(id string) {
	cs.listenersLock.Lock()
	defer cs.listenersLock.Unlock()

	delete(cs.listeners, id)
}

func (cs *commonStore) invokeListeners(oldCfg, newCfg *model.Config) {
	cs.listenersLock.RLock()
	defer cs.listenersLock.RUnlock()

	for _, listener := range cs.listeners {
		listener(oldCfg, newCfg)
	}
}

func (cs *commonStore) validate(cfg *model.Config) error {
	if err := cfg.IsValid(); err != nil {
		return err
	}

	return nil
}
