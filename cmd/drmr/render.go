// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/config"
	"github.com/ik5/drmr/formats/wav"
	"github.com/ik5/drmr/sampler"
)

func runRender(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var pats patterns
	fs.Var(&pats, "p", "step pattern voice:steps (repeatable)")
	out := fs.String("o", "drmr.wav", "output WAV file")
	bpm := fs.Float64("bpm", 120, "tempo in beats per minute")
	loops := fs.Int("loops", 4, "number of times the pattern plays")
	tail := fs.Float64("tail", 2, "seconds rendered after the last step")
	mono := fs.Bool("mono", false, "downmix to mono")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(pats) == 0 {
		return fmt.Errorf("%w: at least one -p is required", errBadPattern)
	}
	if *bpm <= 0 || *loops <= 0 || *tail < 0 {
		return errors.New("bpm and loops must be positive, tail not negative")
	}

	e, err := newEngine(cfg, scan(cfg))
	if err != nil {
		return err
	}
	defer e.Close()

	voices := len(e.VoiceNames())
	for _, p := range pats {
		if p.voice >= voices {
			logger.Warn("pattern voice not in kit", "voice", p.voice, "voices", voices)
		}
	}

	buf := render(e, pats.schedule(*loops), pats.length()*(*loops), renderOptions{
		rate:      cfg.SampleRate,
		blockSize: cfg.BlockSize,
		bpm:       *bpm,
		tail:      *tail,
		baseNote:  cfg.BaseNote,
	})

	if *mono {
		buf, err = audio.ReadAll(audio.NewMonoMixer(audio.NewBufferSource(buf)), cfg.BlockSize*2)
		if err != nil {
			return fmt.Errorf("downmixing: %w", err)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(f, buf.SampleRate, buf.Channels, buf.Data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("rendered",
		"file", *out,
		"frames", buf.Frames,
		"channels", buf.Channels,
		"seconds", float64(buf.Frames)/float64(buf.SampleRate))
	return nil
}

type renderOptions struct {
	rate      int
	blockSize int
	bpm       float64
	tail      float64
	baseNote  int
}

// render runs the engine offline over the scheduled hits and returns the
// interleaved stereo result. Hits are placed at their exact frame inside
// the block they fall in.
func render(e *sampler.Engine, hits []hit, steps int, o renderOptions) *audio.Buffer {
	spf := framesPerStep(o.rate, o.bpm)
	total := int(math.Ceil(float64(steps)*spf)) + int(o.tail*float64(o.rate))

	out := &audio.Buffer{
		SampleRate: o.rate,
		Channels:   2,
		Frames:     total,
		Data:       make([]float32, total*2),
	}
	left := make([]float32, o.blockSize)
	right := make([]float32, o.blockSize)
	events := make([]sampler.Event, 0, 64)

	next := 0
	for start := 0; start < total; start += o.blockSize {
		n := min(o.blockSize, total-start)

		events = events[:0]
		for next < len(hits) {
			at := int(float64(hits[next].step) * spf)
			if at >= start+n {
				break
			}
			note := o.baseNote + hits[next].voice
			if note <= 127 {
				events = append(events, sampler.NoteOn(at-start, uint8(note), hits[next].velocity))
			}
			next++
		}

		e.Run(n, events, left[:n], right[:n])

		for f := range n {
			out.Data[(start+f)*2] = left[f]
			out.Data[(start+f)*2+1] = right[f]
		}
	}
	return out
}
