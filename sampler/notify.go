// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"sync/atomic"
)

// NotificationKind is the type of an outbound notification.
type NotificationKind uint8

const (
	// NotifyKitChanged is sent after a new kit has been published.
	NotifyKitChanged NotificationKind = iota + 1
	// NotifyVoiceFired is sent for every note-on that reached a voice.
	NotifyVoiceFired
	// NotifyStateReport answers a get-state event.
	NotifyStateReport
	// NotifyLoadFailed is sent when a kit could not be loaded. The
	// previously published kit stays in place.
	NotifyLoadFailed
)

func (k NotificationKind) String() string {
	switch k {
	case NotifyKitChanged:
		return "kit-changed"
	case NotifyVoiceFired:
		return "voice-fired"
	case NotifyStateReport:
		return "state-report"
	case NotifyLoadFailed:
		return "load-failed"
	default:
		return fmt.Sprintf("notification(%d)", uint8(k))
	}
}

// Notification is an outbound message for the host UI.
type Notification struct {
	Kind  NotificationKind
	Path  string
	Voice int
	Event Event
	Err   error
}

// notifier delivers notifications without ever blocking the sender. When
// nobody drains the channel, notifications are dropped and counted.
type notifier struct {
	ch      chan Notification
	dropped atomic.Uint64
}

func newNotifier(size int) *notifier {
	return &notifier{ch: make(chan Notification, size)}
}

func (n *notifier) send(msg Notification) {
	select {
	case n.ch <- msg:
	default:
		n.dropped.Add(1)
	}
}
