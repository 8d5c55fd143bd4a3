// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/formats"
	"github.com/ik5/drmr/kit"
)

const (
	defaultQueueSize  = 256
	defaultNotifySize = 64
)

// Options configures an Engine. SampleRate and at least one kit source
// (Catalog or InitialKit) are required.
type Options struct {
	SampleRate int

	// Catalog backs RequestKitIndex and the kit-index port.
	Catalog kit.Catalog
	// InitialKit is a kit directory or a catalog name. It is loaded before
	// NewEngine returns.
	InitialKit string

	// Loader defaults to a FileLoader over Registry and Converter.
	Loader Loader
	// Registry defaults to formats.NewRegistry().
	Registry *audio.Registry
	// Converter defaults to the high quality soxr converter.
	Converter audio.Converter

	Logger *slog.Logger

	// QueueSize bounds the external event queue; NotifySize the
	// notification channel.
	QueueSize  int
	NotifySize int

	// MapPath rewrites the kit path before it is saved, e.g. to make it
	// relative to a project. ResolvePath reverses it on restore; it
	// defaults to ResolveKitPath.
	MapPath     func(string) string
	ResolvePath func(string) (string, bool)
}

// Engine is a drum sampler. Run is called from the audio thread once per
// block; every other method may be called from any goroutine.
type Engine struct {
	rate        int
	log         *slog.Logger
	gate        *Gate
	params      Params
	catalog     kit.Catalog
	queue       chan Event
	notify      *notifier
	worker      *worker
	mapPath     func(string) string
	resolvePath func(string) (string, bool)

	// Owned by the audio thread.
	lastKitIndex int
	deferred     request
	hasDeferred  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewEngine validates opts, loads the initial kit and starts the kit
// worker. It fails with ErrConfig when there is no kit to play.
func NewEngine(opts Options) (*Engine, error) {
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrConfig, opts.SampleRate)
	}
	if len(opts.Catalog) == 0 && opts.InitialKit == "" {
		return nil, fmt.Errorf("%w: %w", ErrConfig, kit.ErrNoKits)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	loader := opts.Loader
	if loader == nil {
		reg := opts.Registry
		if reg == nil {
			reg = formats.NewRegistry()
		}
		conv := opts.Converter
		if conv == nil {
			conv = audio.SoxrConverter{Quality: audio.QualitySoxrHigh}
		}
		loader = &FileLoader{Registry: reg, Converter: conv, Logger: log}
	}

	queue := opts.QueueSize
	if queue <= 0 {
		queue = defaultQueueSize
	}
	notifySize := opts.NotifySize
	if notifySize <= 0 {
		notifySize = defaultNotifySize
	}

	e := &Engine{
		rate:         opts.SampleRate,
		log:          log,
		gate:         NewGate(),
		catalog:      opts.Catalog,
		queue:        make(chan Event, queue),
		notify:       newNotifier(notifySize),
		mapPath:      opts.MapPath,
		resolvePath:  opts.ResolvePath,
		lastKitIndex: -1,
	}
	if e.mapPath == nil {
		e.mapPath = func(p string) string { return p }
	}
	if e.resolvePath == nil {
		e.resolvePath = ResolveKitPath
	}

	e.params.Connect(PortBaseNote, NewControl(DefaultBaseNote))
	e.params.Connect(PortIgnoreVelocity, NewControl(0))
	e.params.Connect(PortIgnoreNoteOff, NewControl(0))
	e.params.Connect(PortZeroPosition, NewControl(float32(ZeroTopLeft)))

	if opts.InitialKit != "" {
		path := filepath.Clean(opts.InitialKit)
		if i := opts.Catalog.Find(opts.InitialKit); i >= 0 {
			path = opts.Catalog[i].Path
			e.lastKitIndex = i
		}
		s, err := loader.Load(path, e.rate)
		switch {
		case err == nil:
			e.gate.Publish(s)
		case len(opts.Catalog) == 0:
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		default:
			log.Warn("initial kit failed to load", "kit", opts.InitialKit, "err", err)
		}
	}

	e.worker = newWorker(loader, e.gate, opts.Catalog, e.rate, e.notify, log)

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.worker.run(ctx)
	}()

	return e, nil
}

// SampleRate is the rate every layer is converted to.
func (e *Engine) SampleRate() int { return e.rate }

// Catalog is the kit list the engine was created with.
func (e *Engine) Catalog() kit.Catalog { return e.catalog }

// Connect attaches host storage to a parameter port. The base note and
// toggle ports start out connected to engine-owned controls.
func (e *Engine) Connect(port Port, c *Control) error {
	return e.params.Connect(port, c)
}

// Control returns the control behind port, or nil when unconnected.
func (e *Engine) Control(port Port) *Control {
	return e.params.Control(port)
}

// Run renders one block of frames into left and right. Events are applied
// in order at their offset, in frames into the block; an event whose
// offset is earlier than its predecessor's applies at the predecessor's
// frame. Queued events apply at frame 0. It neither
// allocates nor blocks, except for the short wait on the gate while a new
// kit is being swapped in.
func (e *Engine) Run(frames int, events []Event, left, right []float32) {
	frames = min(frames, len(left), len(right))
	if frames < 0 {
		frames = 0
	}
	left, right = left[:frames], right[:frames]
	clear(left)
	clear(right)

	if e.closed.Load() {
		return
	}

	if e.hasDeferred && e.worker.post(e.deferred, false) {
		e.hasDeferred = false
	}
	if idx, ok := e.params.KitIndex(); ok && idx != e.lastKitIndex {
		e.lastKitIndex = idx
		e.postFromBlock(request{index: idx, byIndex: true})
	}

	s := e.gate.Acquire()

drain:
	for {
		select {
		case ev := <-e.queue:
			ev.Offset = 0
			e.dispatch(s, ev)
		default:
			break drain
		}
	}

	// Mix up to each event before applying it, so a voice that is already
	// sounding keeps playing until the frame the event lands on.
	pos := 0
	for _, ev := range events {
		if off := clampOffset(ev.Offset, frames); off > pos {
			e.mix(s, left[pos:off], right[pos:off])
			pos = off
		}
		e.dispatch(s, ev)
	}
	e.mix(s, left[pos:], right[pos:])

	e.gate.Release()
}

// postFromBlock hands a kit request to the worker without blocking. If the
// request slot is busy the request is retried on the next block.
func (e *Engine) postFromBlock(r request) {
	if e.worker.post(r, false) {
		e.hasDeferred = false
		return
	}
	e.deferred = r
	e.hasDeferred = true
}

// Enqueue queues an event for the next block, at offset 0. It never blocks
// and reports false when the queue is full or the engine is closed.
func (e *Engine) Enqueue(ev Event) bool {
	if e.closed.Load() {
		return false
	}
	select {
	case e.queue <- ev:
		return true
	default:
		return false
	}
}

// Trigger plays voice index at the given velocity on the next block, as
// if its note had been received.
func (e *Engine) Trigger(index int, velocity uint8) error {
	if e.closed.Load() {
		return ErrClosed
	}
	note := index + e.params.BaseNote()
	if index < 0 || note < 0 || note > 127 {
		return fmt.Errorf("%w: voice %d", ErrOutOfRange, index)
	}
	if !e.Enqueue(NoteOn(0, uint8(note), velocity)) {
		return ErrQueueFull
	}
	return nil
}

// RequestKit asks the worker to load the kit at path. An empty path
// installs an empty kit. Requesting the current kit does nothing.
func (e *Engine) RequestKit(path string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	e.worker.post(request{path: path}, true)
	return nil
}

// RequestKitIndex asks for catalog entry i. An index outside the catalog
// installs an empty kit.
func (e *Engine) RequestKitIndex(i int) error {
	if e.closed.Load() {
		return ErrClosed
	}
	e.worker.post(request{index: i, byIndex: true}, true)
	return nil
}

// Notifications delivers kit changes, fired voices and state reports.
// Notifications are dropped, not queued, while nobody reads the channel.
func (e *Engine) Notifications() <-chan Notification { return e.notify.ch }

// Dropped counts notifications lost to a full channel.
func (e *Engine) Dropped() uint64 { return e.notify.dropped.Load() }

// CurrentKit is the path of the installed kit; empty when none is.
func (e *Engine) CurrentKit() string { return e.gate.Peek().Path }

// KitName is the display name of the installed kit.
func (e *Engine) KitName() string { return e.gate.Peek().Name }

// VoiceNames lists the voices of the installed kit, in note order.
func (e *Engine) VoiceNames() []string { return e.gate.Peek().VoiceNames() }

// Close stops the worker and releases the installed kit. A load in
// progress finishes but is not published. Run outputs silence afterwards.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	e.cancel()
	e.wg.Wait()
	e.gate.Publish(nil)
	return nil
}
