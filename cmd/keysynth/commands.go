// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/eiannone/keyboard"

	"github.com/ik5/keysynth"
	"github.com/ik5/keysynth/audio"
	"github.com/ik5/keysynth/formats"
	"github.com/ik5/keysynth/input"
	"github.com/ik5/keysynth/processor"
)

var soundKeys = []keyboard.Key{
	keyboard.KeyF1, keyboard.KeyF2, keyboard.KeyF3,
	keyboard.KeyF4, keyboard.KeyF5, keyboard.KeyF6,
}

// commands maps F1..F6 to processor.Names in order and F12 to a stats line.
func commands(ctrl *keysynth.Controller, logger *slog.Logger) input.CommandFunc {
	names := processor.Names()

	return func(ev keyboard.KeyEvent) bool {
		if ev.Key == keyboard.KeyF12 {
			st := ctrl.Stats()
			logger.Info("stats", "buffers", st.Buffers, "frames", st.Frames, "skipped", st.Skipped)
			return true
		}

		for i, k := range soundKeys {
			if ev.Key != k || i >= len(names) {
				continue
			}
			fn, err := processor.ByName(names[i])
			if err != nil {
				logger.Error("switching sound", "error", err)
				return true
			}
			if err := ctrl.SetProcessorFunction(fn); err != nil {
				logger.Error("switching sound", "error", err)
				return false
			}
			logger.Info("sound", "name", names[i])
			return true
		}
		return true
	}
}

// loadSampler keeps the file's own rate: the sampler steps through the clip
// in seconds, so the device rate does not need to be known yet.
func loadSampler(path string, root int32) (processor.Func, error) {
	src, err := formats.NewRegistry().DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading sample: %w", err)
	}
	clip, err := audio.LoadClip(src, src.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("loading sample %s: %w", path, err)
	}
	return processor.Sampler(clip, root), nil
}
