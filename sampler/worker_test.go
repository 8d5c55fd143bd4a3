// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/drmr/kit"
)

func TestWorker_LoadsRequestedKit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Options{InitialKit: "a"})
	old := e.gate.Peek()

	if err := e.RequestKit("b"); err != nil {
		t.Fatal(err)
	}
	n := waitFor(t, e, NotifyKitChanged)

	if n.Path != "b" || e.CurrentKit() != "b" {
		t.Errorf("kit = %q (notified %q), want b", e.CurrentKit(), n.Path)
	}
	if !old.Disposed() {
		t.Error("previous kit not released")
	}
}

func TestWorker_SameKitIsNoop(t *testing.T) {
	t.Parallel()

	loader := newCountingLoader(nil)
	e := newTestEngine(t, Options{InitialKit: "a", Loader: loader})
	cur := e.gate.Peek()

	for range 3 {
		if err := e.RequestKit("a"); err != nil {
			t.Fatal(err)
		}
	}
	// Requests are served in order, so once b is in a has been seen.
	e.RequestKit("b")
	waitFor(t, e, NotifyKitChanged)

	if got := loader.count("a"); got != 1 {
		t.Errorf("kit a loaded %d times, want 1", got)
	}
	if !cur.Disposed() {
		t.Error("kit a should only be released by the switch to b")
	}
}

func TestWorker_DuplicateRequestsLoadOnce(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 4)
	release := make(chan struct{})
	loader := newCountingLoader(func(path string) (*Store, error) {
		if path == "slow" {
			started <- struct{}{}
			<-release
		}
		return drumStore(path), nil
	})
	e := newTestEngine(t, Options{InitialKit: "a", Loader: loader})

	e.RequestKit("slow")
	<-started
	e.RequestKit("slow")
	close(release)

	n := waitFor(t, e, NotifyKitChanged)
	if n.Path != "slow" {
		t.Fatalf("published %q, want slow", n.Path)
	}

	e.RequestKit("b")
	waitFor(t, e, NotifyKitChanged)

	if got := loader.count("slow"); got != 1 {
		t.Errorf("slow kit loaded %d times, want 1", got)
	}
}

func TestWorker_SupersededLoadIsDropped(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	loader := newCountingLoader(func(path string) (*Store, error) {
		if path == "slow" {
			started <- struct{}{}
			<-release
		}
		return drumStore(path), nil
	})
	e := newTestEngine(t, Options{InitialKit: "a", Loader: loader})

	e.RequestKit("slow")
	<-started
	e.RequestKit("b")
	close(release)

	n := waitFor(t, e, NotifyKitChanged)
	if n.Path != "b" {
		t.Errorf("first published kit = %q, want b", n.Path)
	}
	if e.CurrentKit() != "b" {
		t.Errorf("CurrentKit() = %q, want b", e.CurrentKit())
	}
}

func TestWorker_FailedLoadKeepsKit(t *testing.T) {
	t.Parallel()

	loader := newCountingLoader(func(path string) (*Store, error) {
		if path == "bad" {
			return nil, ErrLoadFailed
		}
		return drumStore(path), nil
	})
	e := newTestEngine(t, Options{InitialKit: "a", Loader: loader})
	cur := e.gate.Peek()

	e.RequestKit("bad")
	n := waitFor(t, e, NotifyLoadFailed)

	if n.Path != "bad" || !errors.Is(n.Err, ErrLoadFailed) {
		t.Errorf("notification = %+v", n)
	}
	if e.gate.Peek() != cur || cur.Disposed() {
		t.Error("failed load replaced the current kit")
	}

	left, right := block(8)
	e.Run(8, []Event{NoteOn(0, DefaultBaseNote, 127)}, left, right)
	if !approx(left[0], 1) {
		t.Errorf("previous kit silent after failed load: %v", left[0])
	}
}

func TestWorker_KitIndex(t *testing.T) {
	t.Parallel()

	catalog := kit.Catalog{
		{Name: "Alpha", Path: "kits/alpha"},
		{Name: "Beta", Path: "kits/beta"},
	}
	e := newTestEngine(t, Options{Catalog: catalog, InitialKit: "Alpha"})

	if got := e.CurrentKit(); got != "kits/alpha" {
		t.Fatalf("CurrentKit() = %q, want kits/alpha", got)
	}

	e.RequestKitIndex(1)
	if n := waitFor(t, e, NotifyKitChanged); n.Path != "kits/beta" {
		t.Errorf("RequestKitIndex(1) installed %q, want kits/beta", n.Path)
	}

	e.RequestKitIndex(7)
	n := waitFor(t, e, NotifyKitChanged)
	if n.Path != "" || e.CurrentKit() != "" || len(e.VoiceNames()) != 0 {
		t.Errorf("out of range index left kit %q with %d voices", e.CurrentKit(), len(e.VoiceNames()))
	}

	// An empty kit plays nothing.
	left, right := block(8)
	e.Run(8, []Event{NoteOn(0, DefaultBaseNote, 127)}, left, right)
	if left[0] != 0 {
		t.Errorf("empty kit output = %v", left[0])
	}
}

func TestWorker_KitIndexPort(t *testing.T) {
	t.Parallel()

	catalog := kit.Catalog{
		{Name: "Alpha", Path: "kits/alpha"},
		{Name: "Beta", Path: "kits/beta"},
	}
	e := newTestEngine(t, Options{Catalog: catalog, InitialKit: "kits/alpha"})
	idx := NewControl(0)
	e.Connect(PortKitIndex, idx)
	left, right := block(8)

	// The port already points at the installed kit.
	e.Run(8, nil, left, right)

	idx.Store(1.6)
	e.Run(8, nil, left, right)

	if n := waitFor(t, e, NotifyKitChanged); n.Path != "kits/beta" {
		t.Errorf("kit index port installed %q, want kits/beta", n.Path)
	}
}

func TestWorker_KitChangeEvent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Options{InitialKit: "a"})
	left, right := block(8)

	e.Run(8, []Event{KitChange("b")}, left, right)

	if n := waitFor(t, e, NotifyKitChanged); n.Path != "b" {
		t.Errorf("installed %q, want b", n.Path)
	}
}

func TestWorker_BlockedSlotIsRetried(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Options{InitialKit: "a"})
	left, right := block(8)

	e.worker.mu.Lock()
	e.Run(8, []Event{KitChange("b")}, left, right)
	if !e.hasDeferred {
		t.Error("request not deferred while the slot was busy")
	}
	e.worker.mu.Unlock()

	e.Run(8, nil, left, right)
	if e.hasDeferred {
		t.Error("deferred request not posted on the next block")
	}

	if n := waitFor(t, e, NotifyKitChanged); n.Path != "b" {
		t.Errorf("installed %q, want b", n.Path)
	}
}

func TestWorker_CloseWaitsForLoad(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	loader := newCountingLoader(func(path string) (*Store, error) {
		if path == "slow" {
			started <- struct{}{}
			<-release
		}
		return drumStore(path), nil
	})
	e := newTestEngine(t, Options{InitialKit: "a", Loader: loader})

	e.RequestKit("slow")
	<-started

	closed := make(chan struct{})
	go func() {
		e.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a load was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-closed

	if e.CurrentKit() != "" {
		t.Errorf("CurrentKit() after Close = %q, want empty", e.CurrentKit())
	}
}
