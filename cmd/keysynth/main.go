// SPDX-License-Identifier: EPL-2.0

// Command keysynth plays synthesized notes from the computer keyboard.
//
// The lower letter row starts at C3 and the upper row at C4, laid out like a
// piano. F1 to F6 switch the sound, F12 prints render statistics and Esc
// quits. When stdin is not a terminal, or with -backend wav, the note given
// by -root is rendered into the file named by -out instead.
//
// Usage:
//
//	keysynth [-backend oto|pulse|portaudio|wav] [-wave sine] [-sample kick.wav]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/ik5/keysynth"
	"github.com/ik5/keysynth/device"
	"github.com/ik5/keysynth/input"
	"github.com/ik5/keysynth/keys"
	"github.com/ik5/keysynth/processor"
)

type config struct {
	backend  string
	rate     int
	channels int
	encoding string
	out      string
	duration time.Duration
	wave     string
	sample   string
	root     int
	hold     time.Duration
	verbose  bool
}

func main() {
	var cfg config

	flag.StringVar(&cfg.backend, "backend", "oto", "output backend: oto, pulse, portaudio or wav")
	flag.IntVar(&cfg.rate, "rate", 0, "sample rate in Hz (0 keeps the device default)")
	flag.IntVar(&cfg.channels, "channels", 0, "output channels (0 keeps the device default)")
	flag.StringVar(&cfg.encoding, "encoding", "", "sample encoding: u8, u16, i16 or f32")
	flag.StringVar(&cfg.out, "out", "keysynth.wav", "output file for the wav backend")
	flag.DurationVar(&cfg.duration, "duration", 2*time.Second, "length rendered by the wav backend")
	flag.StringVar(&cfg.wave, "wave", "sine", "initial sound: one of the F-key sounds")
	flag.StringVar(&cfg.sample, "sample", "", "audio file (wav, aiff, mp3, ogg) to play instead of -wave")
	flag.IntVar(&cfg.root, "root", 60, "key at which -sample plays at its recorded pitch")
	flag.DurationVar(&cfg.hold, "hold", input.DefaultHold, "how long a key sounds after its last repeat")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if err := run(ctx, cfg, interactive, logger); err != nil {
		logger.Error("keysynth failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, interactive bool, logger *slog.Logger) error {
	if !interactive && cfg.backend != "wav" {
		logger.Info("stdin is not a terminal, rendering to file", "path", cfg.out)
		cfg.backend = "wav"
	}

	format, err := cfg.format()
	if err != nil {
		return err
	}
	host, err := newHost(cfg, format, interactive)
	if err != nil {
		return err
	}

	fn, err := processor.ByName(cfg.wave)
	if err != nil {
		return fmt.Errorf("%w (choose from %v)", err, processor.Names())
	}
	if cfg.sample != "" {
		if fn, err = loadSampler(cfg.sample, int32(cfg.root)); err != nil {
			return err
		}
		logger.Info("sample loaded", "path", cfg.sample, "root", cfg.root)
	}

	opts := []keysynth.Option{
		keysynth.WithLogger(logger),
		keysynth.WithFormat(format),
		keysynth.WithProcessor(fn),
	}
	headless := cfg.backend == "wav" && !interactive
	if headless {
		opts = append(opts, keysynth.WithKeyActions(keys.Press(int32(cfg.root))))
	}

	ctrl, err := keysynth.Start(ctx, host, opts...)
	if err != nil {
		return err
	}

	if headless {
		// The stream ends by itself once the file is complete.
		<-ctrl.Done()
		return ctrl.Close()
	}

	// Stop reading keys when the stream ends first.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-ctrl.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	kb := input.NewKeyboard(input.PianoLayout(), cfg.hold, ctrl.KeyAction)
	err = input.Listen(ctx, kb, commands(ctrl, logger))
	return errors.Join(err, ctrl.Close())
}

func (cfg config) format() (device.Format, error) {
	f := device.Format{SampleRate: cfg.rate, Channels: cfg.channels}
	if cfg.encoding != "" {
		enc, err := device.ParseEncoding(cfg.encoding)
		if err != nil {
			return device.Format{}, err
		}
		f.Encoding = enc
	}
	return f, nil
}
