package presence

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// CatalogWatcher reloads a catalog file into a HeadlineGenerator whenever
// the file changes. A file that fails to load leaves the current catalog
// in place.
type CatalogWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	gen     *HeadlineGenerator
	log     logrus.FieldLogger
	reloads chan struct{}
}

func NewCatalogWatcher(path string, gen *HeadlineGenerator, log logrus.FieldLogger) (*CatalogWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	return &CatalogWatcher{
		watcher: w,
		path:    abs,
		gen:     gen,
		log:     log.WithField("catalog", abs),
		reloads: make(chan struct{}, 1),
	}, nil
}

// Reloaded is signalled after each successful reload. Sends are dropped
// when nobody is listening.
func (w *CatalogWatcher) Reloaded() <-chan struct{} {
	return w.reloads
}

// Run blocks until ctx is done or the watcher is closed. The parent
// directory is watched so that editors which replace the file are seen.
func (w *CatalogWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("catalog watcher error")
		}
	}
}

func (w *CatalogWatcher) reload() {
	c, err := LoadCatalog(w.path)
	if err != nil {
		w.log.WithError(err).Warn("keeping previous headline catalog")
		return
	}
	w.gen.SetCatalog(c)
	w.log.WithField("templates", c.Len()).Info("headline catalog reloaded")

	select {
	case w.reloads <- struct{}{}:
	default:
	}
}
