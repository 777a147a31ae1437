// SPDX-License-Identifier: EPL-2.0

package keysynth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ik5/keysynth/device"
	"github.com/ik5/keysynth/keys"
	"github.com/ik5/keysynth/processor"
	"github.com/ik5/keysynth/queue"
)

// Controller is the caller's handle on a running render loop. Its methods are
// safe for concurrent use and never wait on the audio goroutine.
type Controller struct {
	processors *queue.Sender[processor.Func]
	actions    *queue.Sender[keys.Action]

	format   device.Format
	device   string
	stream   device.Stream
	counters *counters
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	err    error // set before done is closed

	closeOnce sync.Once
	closeErr  error
}

// Start opens the default output device of host and launches the render
// loop on the stream's goroutine. It fails when no device is available, its
// format is unusable or the stream cannot be opened. The loop runs until ctx
// is done, Close is called or the stream ends.
func Start(ctx context.Context, host device.Host, opts ...Option) (*Controller, error) {
	o := options{
		logger:    slog.Default(),
		processor: processor.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dev, err := host.DefaultOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoOutputDevice, err)
	}
	if dev == nil {
		return nil, ErrNoOutputDevice
	}

	def, err := dev.DefaultFormat()
	if err != nil {
		return nil, release(dev, fmt.Errorf("%w: %w", ErrUnusableFormat, err))
	}
	format := o.format.Merge(def)
	if err := format.Validate(); err != nil {
		return nil, release(dev, fmt.Errorf("%w: %w", ErrUnusableFormat, err))
	}

	procTx, procRx := queue.New[processor.Func]()
	actTx, actRx := queue.New[keys.Action]()
	for _, a := range o.actions {
		_ = actTx.Send(a) // the receiver is still open
	}
	r := newRenderer(format, procRx, actRx, o.processor)

	stream, err := dev.Open(format, r.render)
	if err != nil {
		return nil, release(dev, fmt.Errorf("opening %s: %w", dev.Name(), err))
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		processors: procTx,
		actions:    actTx,
		format:     format,
		device:     dev.Name(),
		stream:     stream,
		counters:   r.counters,
		logger:     o.logger,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	c.logger.Info("engine started", "device", c.device, "format", format.String())

	go c.run(ctx, r)

	return c, nil
}

// release closes a device that was never opened and adds any failure to err.
func release(dev device.Device, err error) error {
	c, ok := dev.(io.Closer)
	if !ok {
		return err
	}
	if cerr := c.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("releasing %s: %w", dev.Name(), cerr))
	}
	return err
}

func (c *Controller) run(ctx context.Context, r *renderer) {
	defer close(c.done)

	err := c.stream.Run(ctx)
	r.close()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.err = err
		c.logger.Error("stream failed", "device", c.device, "error", err)
	}

	st := c.counters.snapshot()
	if st.Skipped > 0 {
		c.logger.Debug("buffers skipped for unsupported encoding",
			"encoding", c.format.Encoding.String(), "count", st.Skipped)
	}
	c.logger.Info("engine stopped", "device", c.device, "buffers", st.Buffers, "frames", st.Frames)
}

// SetProcessorFunction replaces the synthesis function. The render loop picks
// it up at its next buffer; if several arrive in between, the last one wins.
// It fails with ErrDisconnected once the loop has stopped.
func (c *Controller) SetProcessorFunction(fn processor.Func) error {
	if fn == nil {
		return ErrNilProcessor
	}
	return c.processors.Send(fn)
}

// KeyAction queues a key press or release for the render loop. It fails with
// ErrDisconnected once the loop has stopped.
func (c *Controller) KeyAction(a keys.Action) error {
	return c.actions.Send(a)
}

// Format returns the format the stream was opened with.
func (c *Controller) Format() device.Format { return c.format }

// Stats returns a snapshot of the render counters.
func (c *Controller) Stats() Stats { return c.counters.snapshot() }

// Done is closed once the render loop has stopped.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Err returns the error the stream stopped with, or nil while it runs or if
// it stopped cleanly.
func (c *Controller) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Close stops the render loop, waits for it and releases the stream. It
// returns the stream failure, if any. Calling it again returns the same
// result.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		<-c.done

		c.closeErr = c.err
		if err := c.stream.Close(); err != nil {
			c.closeErr = errors.Join(c.closeErr, fmt.Errorf("closing %s: %w", c.device, err))
		}
	})
	return c.closeErr
}
