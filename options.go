// SPDX-License-Identifier: EPL-2.0

package keysynth

import (
	"log/slog"

	"github.com/ik5/keysynth/device"
	"github.com/ik5/keysynth/keys"
	"github.com/ik5/keysynth/processor"
)

type options struct {
	logger    *slog.Logger
	processor processor.Func
	format    device.Format
	actions   []keys.Action
}

// Option configures Start.
type Option func(*options)

// WithLogger sets the logger for lifecycle events. The render path never
// logs. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProcessor sets the synthesis function installed before the first
// buffer, instead of processor.Default.
func WithProcessor(fn processor.Func) Option {
	return func(o *options) {
		if fn != nil {
			o.processor = fn
		}
	}
}

// WithFormat overrides the device's default format. Zero fields keep the
// device default.
func WithFormat(f device.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithKeyActions queues actions so they apply before the first buffer, as
// if KeyAction had been called ahead of the stream.
func WithKeyActions(actions ...keys.Action) Option {
	return func(o *options) {
		o.actions = append(o.actions, actions...)
	}
}
