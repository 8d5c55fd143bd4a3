// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"sync"
	"sync/atomic"
)

// Gate is the single hand-off point for the current Store.
//
// The real-time path holds the lock for one whole block (Acquire/Release)
// because mixing walks every voice. The loader takes the same lock only
// for the pointer swap in Publish. The previous store is disposed after
// the lock is released, by the publishing goroutine, so no block can still
// be reading it. The handle itself is atomic so that non-real-time
// readers can Peek at immutable fields (path, names) without the lock.
type Gate struct {
	mu  sync.Mutex
	cur atomic.Pointer[Store]
}

// NewGate returns a gate holding an empty store.
func NewGate() *Gate {
	g := &Gate{}
	g.cur.Store(NewStore("", "", nil))
	return g
}

// Acquire locks the gate and returns the current store. The caller owns
// the store's playback state until Release.
func (g *Gate) Acquire() *Store {
	g.mu.Lock()
	return g.cur.Load()
}

// Release ends the exclusive section begun by Acquire.
func (g *Gate) Release() {
	g.mu.Unlock()
}

// Peek returns the current store without locking. Only fields that never
// change after publication (Path, Name, VoiceNames, Len) may be read.
func (g *Gate) Peek() *Store {
	return g.cur.Load()
}

// Publish installs s and disposes the store it replaced.
func (g *Gate) Publish(s *Store) {
	if s == nil {
		s = NewStore("", "", nil)
	}

	g.mu.Lock()
	old := g.cur.Swap(s)
	g.mu.Unlock()

	if old != nil && old != s {
		old.dispose()
	}
}
