// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/ik5/drmr/kit"
)

// request is a pending kit change. byIndex selects a catalog entry instead
// of a path.
type request struct {
	path    string
	index   int
	byIndex bool
}

// worker owns kit loading. Requests land in a single slot, so a burst of
// requests collapses into the latest one.
type worker struct {
	mu     sync.Mutex
	next   request
	queued bool
	signal chan struct{}

	loader  Loader
	gate    *Gate
	catalog kit.Catalog
	rate    int
	notify  *notifier
	log     *slog.Logger
}

func newWorker(loader Loader, gate *Gate, catalog kit.Catalog, rate int, n *notifier, log *slog.Logger) *worker {
	return &worker{
		signal:  make(chan struct{}, 1),
		loader:  loader,
		gate:    gate,
		catalog: catalog,
		rate:    rate,
		notify:  n,
		log:     log,
	}
}

// post fills the request slot. With wait false it gives up rather than
// block on the slot lock and reports false; the block path uses that.
func (w *worker) post(r request, wait bool) bool {
	if wait {
		w.mu.Lock()
	} else if !w.mu.TryLock() {
		return false
	}
	w.next = r
	w.queued = true
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
	return true
}

func (w *worker) take() (request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.next, w.queued
	w.queued = false
	return r, ok
}

func (w *worker) peek() (request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.next, w.queued
}

// run serves requests until ctx is cancelled.
func (w *worker) run(ctx context.Context) {
	w.log.Info("kit worker started")
	defer w.log.Info("kit worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.signal:
		}

		for ctx.Err() == nil {
			r, ok := w.take()
			if !ok {
				break
			}
			w.handle(ctx, r)
		}
	}
}

// resolve turns a request into a kit path. ok is false for an index
// outside the catalog.
func (w *worker) resolve(r request) (string, bool) {
	if r.byIndex {
		if r.index < 0 || r.index >= len(w.catalog) {
			return "", false
		}
		return w.catalog[r.index].Path, true
	}
	if r.path == "" {
		return "", true
	}
	return filepath.Clean(r.path), true
}

func (w *worker) handle(ctx context.Context, r request) {
	path, ok := w.resolve(r)
	if !ok {
		w.log.Warn("kit index out of range", "index", r.index, "kits", len(w.catalog))
		if w.gate.Peek().Path != "" {
			w.publish(NewStore("", "", nil))
		}
		return
	}

	if path == w.gate.Peek().Path {
		w.log.Debug("kit already current", "path", path)
		return
	}

	if path == "" {
		w.publish(NewStore("", "", nil))
		return
	}

	s, err := w.loader.Load(path, w.rate)
	if err != nil {
		w.log.Warn("keeping previous kit", "path", path, "err", err)
		w.notify.send(Notification{Kind: NotifyLoadFailed, Path: path, Err: err})
		return
	}

	if ctx.Err() != nil {
		return
	}
	if nr, ok := w.peek(); ok {
		if np, _ := w.resolve(nr); np != path {
			w.log.Debug("dropping superseded kit", "path", path, "next", np)
			return
		}
	}

	w.publish(s)
}

func (w *worker) publish(s *Store) {
	w.gate.Publish(s)
	w.notify.send(Notification{Kind: NotifyKitChanged, Path: s.Path})
}
