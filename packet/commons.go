// Package packet defines the timestamped units of data exchanged with
// the transformation kernel.
package packet

import (
	"fmt"

	"github.com/xaionaro-go/imgpipeline/frame"
	"github.com/xaionaro-go/imgpipeline/types"
)

// Image is an input image packet.
type Image struct {
	PTS   int64
	Frame *frame.Frame
}

func BuildImage(pts int64, f *frame.Frame) Image {
	return Image{
		PTS:   pts,
		Frame: f,
	}
}

func (p Image) String() string {
	return fmt.Sprintf("ImagePacket(pts=%d, %s)", p.PTS, p.Frame)
}

// Dimensions is an output-dimension directive packet, carried on its own
// stream and timestamp-aligned with the image stream.
type Dimensions struct {
	PTS  int64
	Size types.Resolution
}

func BuildDimensions(pts int64, size types.Resolution) Dimensions {
	return Dimensions{
		PTS:  pts,
		Size: size,
	}
}

func (p Dimensions) String() string {
	return fmt.Sprintf("DimensionsPacket(pts=%d, %s)", p.PTS, p.Size)
}

// Output is a produced image packet. It carries the same timestamp as
// the input image it was produced from.
type Output struct {
	PTS   int64
	Frame *frame.Frame
}

func BuildOutput(pts int64, f *frame.Frame) Output {
	return Output{
		PTS:   pts,
		Frame: f,
	}
}

func (p Output) String() string {
	return fmt.Sprintf("OutputPacket(pts=%d, %s)", p.PTS, p.Frame)
}
