/*
 * watch.go, part of psigo.
 *
 * Copyright 2026 The psigo Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mas

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher removes entries from a Cache when their files change on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	cache   *Cache
	dir     string
	changes chan Key
	done    chan struct{}
}

// Watch starts watching dir, invalidating the entries of C read from it when
// a MAS file is created, written, removed or renamed.
func Watch(dir string, C *Cache) (*Watcher, error) {
	dir = filepath.Clean(dir)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, Error{err.Error(), dir, []string{"fsnotify.NewWatcher", "Watch"}, true, ErrNotFound}
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, Error{err.Error(), dir, []string{"Add", "Watch"}, true, ErrNotFound}
	}
	W := &Watcher{watcher: w, cache: C, dir: dir, changes: make(chan Key, changesBuffer), done: make(chan struct{})}
	go W.run()
	return W, nil
}

// changesBuffer is how many changes are kept for a slow reader of Changes.
// Further changes are dropped (the cache is still invalidated).
const changesBuffer = 64

// Changes returns a channel with the key of every file that changed. It is
// closed when the watcher stops. Reading it is optional.
func (W *Watcher) Changes() <-chan Key { return W.changes }

func (W *Watcher) run() {
	defer close(W.done)
	defer close(W.changes)
	for {
		select {
		case event, ok := <-W.watcher.Events:
			if !ok {
				return
			}
			W.handle(event)
		case err, ok := <-W.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error, dropping cached variables", zap.String("dir", W.dir), zap.Error(err))
			W.cache.InvalidateDir(W.dir)
		}
	}
}

func (W *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if !knownExt(event.Name) {
		return
	}
	v, ts, ok := splitName(event.Name)
	if !ok {
		return
	}
	logger.Debug("MAS file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
	k := Key{Dir: W.dir, Var: v, Timestep: ts}
	W.cache.Invalidate(k)
	select {
	case W.changes <- k:
	default:
	}
}

// Close stops the watcher.
func (W *Watcher) Close() error {
	err := W.watcher.Close()
	<-W.done
	return err
}
