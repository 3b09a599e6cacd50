// Package kernel contains the image transformation kernel: the
// orchestrating unit that pairs the image stream with the optional
// output-dimension stream by timestamp, resolves the resize geometry,
// dispatches the matching resampling backend and emits exactly one
// output packet per input image.
package kernel

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/imgpipeline/frame"
	"github.com/xaionaro-go/imgpipeline/geometry"
	"github.com/xaionaro-go/imgpipeline/helpers/closuresignaler"
	"github.com/xaionaro-go/imgpipeline/logger"
	"github.com/xaionaro-go/imgpipeline/packet"
	"github.com/xaionaro-go/imgpipeline/resampler"
	"github.com/xaionaro-go/imgpipeline/types"
	"github.com/xaionaro-go/typing"
	"github.com/xaionaro-go/xsync"
)

const (
	// StreamImage is the required input image stream.
	StreamImage = "IMAGE"
	// StreamOutputDimensions is the optional dimension-directive stream.
	StreamOutputDimensions = "OUTPUT_DIMENSIONS"
)

// TransformationOptions is the immutable configuration bundle of a
// Transformation; it does not change across invocations.
type TransformationOptions struct {
	ScaleMode     geometry.ScaleMode
	Interpolation resampler.Interpolation
	Orientation   geometry.Orientation

	// OutputSize is the static target size, used only when no
	// dimension stream is wired; nil means "keep the input size".
	OutputSize *types.Resolution

	// DynamicOutputSize declares the OUTPUT_DIMENSIONS stream: every
	// image then waits for the directive with the same timestamp.
	DynamicOutputSize bool
}

func (opts TransformationOptions) String() string {
	return fmt.Sprintf("{%s %s}", opts.ScaleMode, opts.Interpolation)
}

// Transformation is the transformation node. A single instance processes
// one invocation at a time; the only state retained across invocations
// is the options bundle, the pairing buffer (at most one pending packet
// per stream) and statistics.
type Transformation struct {
	*closuresignaler.ClosureSignaler
	Options TransformationOptions
	Stats   ProcessingStatistics

	locker        xsync.Mutex
	software      *resampler.Software
	hardware      *resampler.Hardware
	pendingImage  typing.Optional[packet.Image]
	pendingDims   typing.Optional[packet.Dimensions]
	lastOutputPTS typing.Optional[int64]
}

func NewTransformation(
	ctx context.Context,
	opts TransformationOptions,
) (_ *Transformation, _err error) {
	logger.Debugf(ctx, "NewTransformation: %s", opts)
	defer func() { logger.Debugf(ctx, "/NewTransformation: %v", _err) }()

	if !opts.DynamicOutputSize && opts.OutputSize != nil && !opts.OutputSize.IsValid() {
		return nil, geometry.ErrInvalidDimensions{Target: *opts.OutputSize}
	}
	hardware, err := resampler.NewHardware(ctx, opts.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the hardware resampler: %w", err)
	}
	return &Transformation{
		ClosureSignaler: closuresignaler.New(),
		Options:         opts,
		software:        resampler.NewSoftware(ctx, opts.Interpolation),
		hardware:        hardware,
	}, nil
}

func (t *Transformation) String() string {
	return fmt.Sprintf("Transformation(%s, %s)", t.Options.ScaleMode, t.Options.Interpolation)
}

func (t *Transformation) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close")
	defer logger.Debugf(ctx, "/Close")
	t.ClosureSignaler.Close(ctx)
	return errors.Join(
		t.software.Close(ctx),
		t.hardware.Close(ctx),
	)
}

// SendInputImage consumes one image packet; when the image's companion
// dimension directive (if required) is already buffered, the resulting
// output packet is sent to outputCh before returning.
func (t *Transformation) SendInputImage(
	ctx context.Context,
	input packet.Image,
	outputCh chan<- packet.Output,
) error {
	return xsync.DoA3R1(ctx, &t.locker, t.sendInputImage, ctx, input, outputCh)
}

func (t *Transformation) sendInputImage(
	ctx context.Context,
	input packet.Image,
	outputCh chan<- packet.Output,
) (_err error) {
	logger.Tracef(ctx, "sendInputImage: %s", input)
	defer func() { logger.Tracef(ctx, "/sendInputImage: %v", _err) }()
	defer func() {
		if _err != nil {
			t.Stats.Errors.Add(1)
		}
	}()

	if t.IsClosed() {
		return fmt.Errorf("the kernel is closed")
	}
	if input.Frame == nil {
		return fmt.Errorf("the image packet carries no frame")
	}
	t.Stats.ReceivedImages.Add(1)

	if !t.Options.DynamicOutputSize {
		return t.process(ctx, input, t.staticTarget(input.Frame), outputCh)
	}

	if !t.pendingDims.IsSet() {
		if t.pendingImage.IsSet() {
			// the previous image is still waiting; with monotonic
			// per-stream timestamps its directive can no longer
			// arrive before this one's
			stranded := t.pendingImage.Get()
			t.pendingImage.Set(input)
			return ErrTimestampMismatch{
				MissingStream: StreamOutputDimensions,
				PTS:           stranded.PTS,
			}
		}
		t.pendingImage.Set(input)
		return nil
	}

	dims := t.pendingDims.Get()
	switch {
	case dims.PTS == input.PTS:
		t.pendingDims.Unset()
		return t.process(ctx, input, dims.Size, outputCh)
	case dims.PTS < input.PTS:
		// the buffered directive's image never arrived
		t.pendingDims.Unset()
		t.pendingImage.Set(input)
		return ErrTimestampMismatch{
			MissingStream: StreamImage,
			PTS:           dims.PTS,
		}
	default:
		// the directive stream is already past this image's timestamp
		return ErrTimestampMismatch{
			MissingStream: StreamOutputDimensions,
			PTS:           input.PTS,
		}
	}
}

// SendInputDimensions consumes one output-dimension directive packet;
// when the directive's companion image is already buffered, the
// resulting output packet is sent to outputCh before returning.
func (t *Transformation) SendInputDimensions(
	ctx context.Context,
	input packet.Dimensions,
	outputCh chan<- packet.Output,
) error {
	return xsync.DoA3R1(ctx, &t.locker, t.sendInputDimensions, ctx, input, outputCh)
}

func (t *Transformation) sendInputDimensions(
	ctx context.Context,
	input packet.Dimensions,
	outputCh chan<- packet.Output,
) (_err error) {
	logger.Tracef(ctx, "sendInputDimensions: %s", input)
	defer func() { logger.Tracef(ctx, "/sendInputDimensions: %v", _err) }()
	defer func() {
		if _err != nil {
			t.Stats.Errors.Add(1)
		}
	}()

	if t.IsClosed() {
		return fmt.Errorf("the kernel is closed")
	}
	if !t.Options.DynamicOutputSize {
		return fmt.Errorf("no '%s' stream is declared", StreamOutputDimensions)
	}
	if !input.Size.IsValid() {
		return geometry.ErrInvalidDimensions{Target: input.Size}
	}
	t.Stats.ReceivedDimensions.Add(1)

	if !t.pendingImage.IsSet() {
		if t.pendingDims.IsSet() {
			stranded := t.pendingDims.Get()
			t.pendingDims.Set(input)
			return ErrTimestampMismatch{
				MissingStream: StreamImage,
				PTS:           stranded.PTS,
			}
		}
		t.pendingDims.Set(input)
		return nil
	}

	img := t.pendingImage.Get()
	switch {
	case img.PTS == input.PTS:
		t.pendingImage.Unset()
		return t.process(ctx, img, input.Size, outputCh)
	case img.PTS < input.PTS:
		// the buffered image's directive never arrived
		t.pendingImage.Unset()
		t.pendingDims.Set(input)
		return ErrTimestampMismatch{
			MissingStream: StreamOutputDimensions,
			PTS:           img.PTS,
		}
	default:
		// the image stream is already past this directive's timestamp
		return ErrTimestampMismatch{
			MissingStream: StreamImage,
			PTS:           input.PTS,
		}
	}
}

// Flush reports packets still waiting for a companion at the end of the
// graph's lifetime.
func (t *Transformation) Flush(
	ctx context.Context,
	outputCh chan<- packet.Output,
) error {
	return xsync.DoA2R1(ctx, &t.locker, t.flush, ctx, outputCh)
}

func (t *Transformation) flush(
	ctx context.Context,
	_ chan<- packet.Output,
) (_err error) {
	logger.Tracef(ctx, "flush")
	defer func() { logger.Tracef(ctx, "/flush: %v", _err) }()

	var errs []error
	if t.pendingImage.IsSet() {
		errs = append(errs, ErrTimestampMismatch{
			MissingStream: StreamOutputDimensions,
			PTS:           t.pendingImage.Get().PTS,
		})
	}
	if t.pendingDims.IsSet() {
		errs = append(errs, ErrTimestampMismatch{
			MissingStream: StreamImage,
			PTS:           t.pendingDims.Get().PTS,
		})
	}
	t.pendingImage.Unset()
	t.pendingDims.Unset()
	if len(errs) > 0 {
		t.Stats.Errors.Add(uint64(len(errs)))
	}
	return errors.Join(errs...)
}

func (t *Transformation) staticTarget(f *frame.Frame) types.Resolution {
	if t.Options.OutputSize != nil {
		return *t.Options.OutputSize
	}
	return f.Resolution()
}

func (t *Transformation) process(
	ctx context.Context,
	img packet.Image,
	target types.Resolution,
	outputCh chan<- packet.Output,
) (_err error) {
	logger.Tracef(ctx, "process: %s -> %s", img, target)
	defer func() { logger.Tracef(ctx, "/process: %v", _err) }()

	m, err := geometry.Resolve(
		img.Frame.Resolution(),
		target,
		t.Options.ScaleMode,
		t.Options.Orientation,
	)
	if err != nil {
		return fmt.Errorf("unable to resolve the geometry: %w", err)
	}

	var backend resampler.Abstract
	switch kind := img.Frame.StorageKind(); kind {
	case frame.StorageHostBuffer:
		backend = t.software
	case frame.StorageTexture:
		backend = t.hardware
	default:
		return fmt.Errorf("no resampler for storage kind %s", kind)
	}

	out, err := backend.Resample(ctx, img.Frame, m)
	if err != nil {
		return fmt.Errorf("%s failed: %w", backend, err)
	}

	if t.lastOutputPTS.IsSet() && img.PTS < t.lastOutputPTS.Get() {
		return ErrNonMonotonicOutput{PTS: img.PTS, LastPTS: t.lastOutputPTS.Get()}
	}
	select {
	case outputCh <- packet.BuildOutput(img.PTS, out):
	case <-ctx.Done():
		return ctx.Err()
	}
	t.lastOutputPTS.Set(img.PTS)
	t.Stats.ProducedOutputs.Add(1)
	return nil
}
