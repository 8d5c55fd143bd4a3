// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/ik5/drmr/config"
	"github.com/ik5/drmr/sampler"
)

func runPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	midiIn := fs.String("midi-in", cfg.MIDIIn, "MIDI input port (substring match)")
	listPorts := fs.Bool("list-midi", false, "list MIDI input ports and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	defer midi.CloseDriver()

	if *listPorts {
		for i, in := range midi.GetInPorts() {
			fmt.Printf("%d\t%s\n", i, in.String())
		}
		return nil
	}

	e, err := newEngine(cfg, scan(cfg))
	if err != nil {
		return err
	}
	defer e.Close()

	if cfg.StatePath != "" {
		restoreState(e, cfg.StatePath)
		defer saveState(e, cfg.StatePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := newOutput(e, cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return err
	}
	defer out.Close()

	if *midiIn != "" {
		stopMIDI, err := listenMIDI(e, *midiIn)
		if err != nil {
			return err
		}
		defer stopMIDI()
	}

	go watch(ctx, e)
	go readCommands(ctx, e, os.Stdin, stop)

	fmt.Fprintf(os.Stderr, "playing %q: type a voice number to trigger it, \"kit N\" to switch kits, \"q\" to quit\n", e.KitName())
	<-ctx.Done()
	return nil
}

// output feeds the engine to oto. Read runs on oto's audio goroutine, so
// it renders straight into the byte buffer with no allocation.
type output struct {
	e      *sampler.Engine
	block  int
	left   []float32
	right  []float32
	ctx    *oto.Context
	player *oto.Player
}

func newOutput(e *sampler.Engine, rate, block int) (*output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(block*4) * time.Second / time.Duration(rate),
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio output: %w", err)
	}
	<-ready

	o := &output{
		e:     e,
		block: block,
		left:  make([]float32, block),
		right: make([]float32, block),
		ctx:   ctx,
	}
	o.player = ctx.NewPlayer(o)
	o.player.Play()
	return o, nil
}

func (o *output) Read(p []byte) (int, error) {
	frames := len(p) / 8
	for done := 0; done < frames; {
		n := min(o.block, frames-done)
		o.e.Run(n, nil, o.left[:n], o.right[:n])
		for f := range n {
			b := p[(done+f)*8:]
			binary.LittleEndian.PutUint32(b, math.Float32bits(o.left[f]))
			binary.LittleEndian.PutUint32(b[4:], math.Float32bits(o.right[f]))
		}
		done += n
	}
	return frames * 8, nil
}

func (o *output) Close() {
	o.player.Pause()
	o.player.Close()
}

// listenMIDI routes note messages from the first input port whose name
// contains name into the engine.
func listenMIDI(e *sampler.Engine, name string) (func(), error) {
	var found drivers.In
	for _, in := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			found = in
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("MIDI input %q not found", name)
	}

	stop, err := midi.ListenTo(found, func(msg midi.Message, _ int32) {
		ev, ok := sampler.FromMIDI(msg, 0)
		if !ok {
			return
		}
		if !e.Enqueue(ev) {
			logger.Warn("event queue full, dropping", "event", ev)
		}
	}, midi.HandleError(func(err error) {
		logger.Warn("MIDI listener error", "port", found.String(), "err", err)
	}))
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", found.String(), err)
	}

	logger.Info("MIDI input connected", "port", found.String())
	return stop, nil
}

// watch logs kit changes and load failures until ctx ends.
func watch(ctx context.Context, e *sampler.Engine) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-e.Notifications():
			switch n.Kind {
			case sampler.NotifyKitChanged:
				logger.Info("kit changed", "kit", e.KitName(), "path", n.Path, "voices", len(e.VoiceNames()))
			case sampler.NotifyLoadFailed:
				logger.Warn("kit change failed", "path", n.Path, "err", n.Err)
			case sampler.NotifyVoiceFired:
				logger.Debug("voice fired", "voice", n.Voice, "event", n.Event)
			}
		}
	}
}

// readCommands reads trigger and kit commands from r, one per line.
func readCommands(ctx context.Context, e *sampler.Engine, r io.Reader, quit func()) {
	sc := bufio.NewScanner(r)
	for sc.Scan() && ctx.Err() == nil {
		if err := command(e, sc.Text()); err != nil {
			if errors.Is(err, errQuit) {
				quit()
				return
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

var errQuit = errors.New("quit")

func command(e *sampler.Engine, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "q", "quit":
		return errQuit
	case "kit":
		if len(fields) != 2 {
			return errors.New("usage: kit <index|path>")
		}
		if i, err := strconv.Atoi(fields[1]); err == nil {
			return e.RequestKitIndex(i)
		}
		if i := e.Catalog().Find(fields[1]); i >= 0 {
			return e.RequestKitIndex(i)
		}
		return e.RequestKit(fields[1])
	case "voices":
		for i, name := range e.VoiceNames() {
			fmt.Printf("%d\t%s\n", i, name)
		}
		return nil
	}

	vel := uint8(127)
	if len(fields) > 1 {
		v, err := strconv.Atoi(fields[1])
		if err != nil || v < 0 || v > 127 {
			return fmt.Errorf("bad velocity %q", fields[1])
		}
		vel = uint8(v)
	}
	i, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return e.Trigger(i, vel)
}

func restoreState(e *sampler.Engine, path string) {
	st, err := sampler.ReadState(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("ignoring saved state", "path", path, "err", err)
		}
		return
	}
	if err := e.RestoreState(st); err != nil {
		logger.Warn("saved kit not restored", "err", err)
	}
}

func saveState(e *sampler.Engine, path string) {
	if err := sampler.WriteState(path, e.SaveState()); err != nil {
		logger.Warn("saving state", "path", path, "err", err)
		return
	}
	logger.Debug("state saved", "path", path)
}
