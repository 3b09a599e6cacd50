// Package gpu provides the texture-backed execution context used by the
// hardware resampling path: a device with a serialized command queue,
// device-resident textures and texture samplers.
package gpu

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgpipeline/helpers/closuresignaler"
	"github.com/xaionaro-go/imgpipeline/logger"
	"github.com/xaionaro-go/observability"
)

const commandQueueDepth = 64

type command struct {
	name string
	run  func(ctx context.Context)
	done chan struct{}
}

// Device emulates a GPU: commands are executed asynchronously, in
// submission order, by a single queue worker. Texture contents may only
// be touched from inside submitted commands; use Barrier to synchronize.
type Device struct {
	*closuresignaler.ClosureSignaler
	commandQueue chan *command
}

func NewDevice(ctx context.Context) *Device {
	d := &Device{
		ClosureSignaler: closuresignaler.New(),
		commandQueue:    make(chan *command, commandQueueDepth),
	}
	observability.Go(ctx, func(ctx context.Context) {
		d.runQueue(ctx)
	})
	return d
}

func (d *Device) String() string {
	return "Device(emulated)"
}

func (d *Device) runQueue(ctx context.Context) {
	for {
		select {
		case <-d.CloseChan():
			// execute what was submitted before the closure
			for {
				select {
				case cmd := <-d.commandQueue:
					d.execute(ctx, cmd)
				default:
					return
				}
			}
		case cmd := <-d.commandQueue:
			d.execute(ctx, cmd)
		}
	}
}

func (d *Device) execute(ctx context.Context, cmd *command) {
	logger.Tracef(ctx, "execute: %s", cmd.name)
	defer logger.Tracef(ctx, "/execute: %s", cmd.name)
	cmd.run(ctx)
	close(cmd.done)
}

// Submit enqueues a command. It returns a channel that gets closed when
// the command has finished executing on the device.
func (d *Device) Submit(
	ctx context.Context,
	name string,
	run func(ctx context.Context),
) (<-chan struct{}, error) {
	logger.Tracef(ctx, "Submit: %s", name)
	if d.IsClosed() {
		return nil, fmt.Errorf("the device is closed")
	}
	cmd := &command{
		name: name,
		run:  run,
		done: make(chan struct{}),
	}
	select {
	case d.commandQueue <- cmd:
		return cmd.done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Barrier blocks until every command submitted so far has completed.
func (d *Device) Barrier(ctx context.Context) error {
	done, err := d.Submit(ctx, "barrier", func(context.Context) {})
	if err != nil {
		return fmt.Errorf("unable to submit a barrier: %w", err)
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Device) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close")
	defer logger.Debugf(ctx, "/Close")
	d.ClosureSignaler.Close(ctx)
	return nil
}
