// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/ik5/drmr/audio"
)

const testRate = 48000

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func monoLayer(min, max float32, data []float32) Layer {
	return NewLayer(&audio.Buffer{SampleRate: testRate, Channels: 1, Frames: len(data), Data: data}, min, max)
}

func stereoLayer(min, max float32, data []float32) Layer {
	return NewLayer(&audio.Buffer{SampleRate: testRate, Channels: 2, Frames: len(data) / 2, Data: data}, min, max)
}

// drumStore is a two-voice kit of constant 100-frame mono hits.
func drumStore(path string) *Store {
	return NewStore(path, path, []Voice{
		NewVoice("kick", monoLayer(0, 1, constant(100, 1))),
		NewVoice("snare", monoLayer(0, 1, constant(100, 0.5))),
	})
}

type countingLoader struct {
	mu    sync.Mutex
	loads map[string]int
	load  func(path string) (*Store, error)
}

func newCountingLoader(load func(path string) (*Store, error)) *countingLoader {
	if load == nil {
		load = func(path string) (*Store, error) { return drumStore(path), nil }
	}
	return &countingLoader{loads: make(map[string]int), load: load}
}

func (c *countingLoader) Load(path string, _ int) (*Store, error) {
	c.mu.Lock()
	c.loads[path]++
	c.mu.Unlock()
	return c.load(path)
}

func (c *countingLoader) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads[path]
}

func newTestEngine(t testing.TB, opts Options) *Engine {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = testRate
	}
	if opts.Loader == nil {
		opts.Loader = newCountingLoader(nil)
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	e, err := NewEngine(opts)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

// waitFor reads notifications until one of kind arrives.
func waitFor(t testing.TB, e *Engine, kind NotificationKind) Notification {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case n := <-e.Notifications():
			if n.Kind == kind {
				return n
			}
		case <-timeout:
			t.Fatalf("no %v notification", kind)
			return Notification{}
		}
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func block(n int) ([]float32, []float32) {
	return make([]float32, n), make([]float32, n)
}
