/*
 * cache.go, part of psigo.
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
	"sync"
)

// Key identifies a variable read from disk.
type Key struct {
	Dir      string
	Var      string
	Timestep int
}

// Cache keeps variables read from disk, so they are read only once.
// It is safe for concurrent use. Entries are only removed explicitly, or by a Watcher.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*Variable
	hits    int
	misses  int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Key]*Variable)}
}

func (k Key) clean() Key {
	k.Dir = filepath.Clean(k.Dir)
	return k
}

// Get returns the cached variable for k, if any.
func (C *Cache) Get(k Key) (*Variable, bool) {
	k = k.clean()
	C.mu.Lock()
	defer C.mu.Unlock()
	v, ok := C.entries[k]
	if ok {
		C.hits++
	} else {
		C.misses++
	}
	return v, ok
}

// Put stores v under k, replacing any previous entry.
func (C *Cache) Put(k Key, v *Variable) {
	C.mu.Lock()
	C.entries[k.clean()] = v
	C.mu.Unlock()
}

// Invalidate removes the entry for k.
func (C *Cache) Invalidate(k Key) {
	C.mu.Lock()
	delete(C.entries, k.clean())
	C.mu.Unlock()
}

// InvalidateDir removes all the entries read from dir, and returns how many were removed.
func (C *Cache) InvalidateDir(dir string) int {
	dir = filepath.Clean(dir)
	C.mu.Lock()
	defer C.mu.Unlock()
	n := 0
	for k := range C.entries {
		if k.Dir == dir {
			delete(C.entries, k)
			n++
		}
	}
	return n
}

// Purge empties the cache.
func (C *Cache) Purge() {
	C.mu.Lock()
	C.entries = make(map[Key]*Variable)
	C.mu.Unlock()
}

// Len returns the number of cached variables.
func (C *Cache) Len() int {
	C.mu.RLock()
	defer C.mu.RUnlock()
	return len(C.entries)
}

// Stats returns the number of hits and misses so far.
func (C *Cache) Stats() (hits, misses int) {
	C.mu.RLock()
	defer C.mu.RUnlock()
	return C.hits, C.misses
}
