// SPDX-License-Identifier: EPL-2.0

// Command drmr lists, renders and plays drum kits.
//
//	drmr [-config file] [-debug] list
//	drmr [flags] render -o out.wav -p 0:x...x... -p 1:....x...
//	drmr [flags] play [-midi-in port]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/config"
	"github.com/ik5/drmr/formats"
	"github.com/ik5/drmr/kit"
	"github.com/ik5/drmr/sampler"
)

// logger is safe to use before initLogger is called.
var logger = slog.Default()

// initLogger installs the shared text logger on stderr. Debug adds the
// source location.
func initLogger(level slog.Level, debug bool) {
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: drmr [flags] <command> [command flags]

commands:
  list     show the kits found in the kit directories
  render   render step patterns to a WAV file
  play     play a kit live from MIDI input or stdin

flags:
`)
	flag.PrintDefaults()
}

func main() {
	defaultConfig, _ := config.Path()

	var (
		configPath = flag.String("config", defaultConfig, "configuration file")
		debug      = flag.Bool("debug", false, "debug logging")
		kitRef     = flag.String("kit", "", "kit directory or name (overrides config)")
		kitDir     = flag.String("kit-dir", "", "extra kit directory to scan")
		rate       = flag.Int("rate", 0, "sample rate (overrides config)")
		quality    = flag.String("resampler", "", "soxr-high, soxr-medium, soxr-quick or cubic")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "drmr:", err)
		os.Exit(1)
	}
	if *kitRef != "" {
		cfg.Kit = *kitRef
	}
	if *kitDir != "" {
		cfg.KitDirs = append([]string{*kitDir}, cfg.KitDirs...)
	}
	if *rate > 0 {
		cfg.SampleRate = *rate
	}
	if *quality != "" {
		cfg.Resampler = *quality
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "drmr:", err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	initLogger(level, *debug)

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "list":
		err = runList(cfg, args)
	case "render":
		err = runRender(cfg, args)
	case "play":
		err = runPlay(cfg, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", "cmd", cmd, "err", err)
		if errors.Is(err, sampler.ErrConfig) || errors.Is(err, kit.ErrNoKits) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// scan builds the catalog from the configured directories. Kits that fail
// to parse are logged and skipped.
func scan(cfg *config.Config) kit.Catalog {
	catalog, err := kit.Scan(cfg.KitDirs)
	if err != nil {
		logger.Warn("some kits were skipped", "err", err)
	}
	logger.Debug("kit scan finished", "dirs", cfg.KitDirs, "kits", len(catalog))
	return catalog
}

// newEngine builds an engine for cfg with the kit it names.
func newEngine(cfg *config.Config, catalog kit.Catalog) (*sampler.Engine, error) {
	conv, err := audio.NewConverter(cfg.Resampler)
	if err != nil {
		return nil, err
	}

	initial := cfg.Kit
	if initial == "" && len(catalog) > 0 {
		initial = catalog[0].Path
	}
	if initial != "" && catalog.Find(initial) < 0 {
		if abs, err := filepath.Abs(initial); err == nil {
			initial = abs
		}
	}

	e, err := sampler.NewEngine(sampler.Options{
		SampleRate: cfg.SampleRate,
		Catalog:    catalog,
		InitialKit: initial,
		Registry:   formats.NewRegistry(),
		Converter:  conv,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	e.Control(sampler.PortBaseNote).Store(float32(cfg.BaseNote))
	logger.Info("engine ready",
		"kit", e.KitName(),
		"path", e.CurrentKit(),
		"voices", len(e.VoiceNames()),
		"rate", cfg.SampleRate,
		"resampler", cfg.Resampler)
	return e, nil
}
