package config

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/model"
)

func resolveConfigFilePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve config file %s", path)
	}

	return resolved, nil
}

// FileStore is a config store backed by a JSON file. A missing file is created with defaults.
type FileStore struct {
	commonStore

	path string

	watchLock sync.Mutex
	watcher   *watcher
}

func NewFileStore(path string) (fs *FileStore, err error) {
	resolvedPath, err := resolveConfigFilePath(path)
	if err != nil {
		return nil, err
	}

	fs = &FileStore{
		path: resolvedPath,
	}
	if err = fs.Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load")
	}

	return fs, nil
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) persist(cfg *model.Config) error {
	b, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(fs.path, b, 0600)
	if err != nil {
		return errors.Wrap(err, "failed to write file")
	}

	return nil
}

func (fs *FileStore) Load() (err error) {
	var needsSave bool
	var f io.ReadCloser

	f, err = os.Open(fs.path)
	if os.IsNotExist(err) {
		needsSave = true
		defaultCfg := &model.Config{}
		defaultCfg.SetDefaults()

		var defaultCfgBytes []byte
		defaultCfgBytes, err = marshalConfig(defaultCfg)
		if err != nil {
			return errors.Wrap(err, "failed to serialize default config")
		}

		f = ioutil.NopCloser(bytes.NewReader(defaultCfgBytes))

	} else if err != nil {
		return errors.Wrapf(err, "failed to open %s for reading", fs.path)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "failed to close")
		}
	}()

	return fs.commonStore.load(f, needsSave, fs.commonStore.validate, fs.persist)
}

// StartWatching reloads the config whenever the file changes. An invalid file is logged and
// the previous config stays in effect.
func (fs *FileStore) StartWatching() error {
	fs.watchLock.Lock()
	defer fs.watchLock.Unlock()

	if fs.watcher != nil {
		return nil
	}

	w, err := newWatcher(fs.path, func() {
		if err := fs.Load(); err != nil {
			mlog.Error("failed to reload config on change", mlog.String("path", fs.path), mlog.Err(err))
		}
	})
	if err != nil {
		return err
	}

	fs.watcher = w
	return nil
}

func (fs *FileStore) stopWatching() {
	fs.watchLock.Lock()
	defer fs.watchLock.Unlock()

	if fs.watcher != nil {
		fs.watcher.Close()
		fs.watcher = nil
	}
}

func (fs *FileStore) Close() error {
	fs.stopWatching()
	return nil
}
