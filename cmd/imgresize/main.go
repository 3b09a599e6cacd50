// Command imgresize runs one image through the transformation kernel:
// it loads an image file, resizes it according to the flags (or a TOML
// options file) and saves the result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/imgpipeline/frame"
	"github.com/xaionaro-go/imgpipeline/gpu"
	"github.com/xaionaro-go/imgpipeline/kernel"
	"github.com/xaionaro-go/imgpipeline/packet"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <src-image> <dst-image>\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	optionsPath := pflag.String("options", "", "path to a TOML options file")
	width := pflag.Uint32("width", 0, "output width (0: keep the input width)")
	height := pflag.Uint32("height", 0, "output height (0: keep the input height)")
	scaleMode := pflag.String("scale-mode", "", "scale mode: FIT or STRETCH")
	interpolation := pflag.String("interpolation", "", "interpolation: NEAREST or LINEAR")
	rotation := pflag.Int("rotation", -1, "clockwise rotation in degrees: 0, 90, 180 or 270")
	flipH := pflag.Bool("flip-h", false, "flip horizontally")
	flipV := pflag.Bool("flip-v", false, "flip vertically")
	useGPU := pflag.Bool("gpu", false, "run the resize through the texture backend")
	pflag.Parse()
	if len(pflag.Args()) != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	cfg := defaultConfig()
	if *optionsPath != "" {
		if err := loadConfigFile(*optionsPath, &cfg); err != nil {
			l.Fatal(err)
		}
	}
	// flags override the options file
	if pflag.CommandLine.Changed("width") {
		cfg.Width = *width
	}
	if pflag.CommandLine.Changed("height") {
		cfg.Height = *height
	}
	if *scaleMode != "" {
		cfg.ScaleMode = *scaleMode
	}
	if *interpolation != "" {
		cfg.Interpolation = *interpolation
	}
	if *rotation >= 0 {
		cfg.Rotation = *rotation
	}
	if pflag.CommandLine.Changed("flip-h") {
		cfg.FlipHorizontally = *flipH
	}
	if pflag.CommandLine.Changed("flip-v") {
		cfg.FlipVertically = *flipV
	}
	if pflag.CommandLine.Changed("gpu") {
		cfg.GPU = *useGPU
	}

	opts, err := cfg.transformationOptions()
	if err != nil {
		l.Fatal(err)
	}
	l.Debugf("transformation options: %s", spew.Sdump(opts))

	srcPath, dstPath := pflag.Arg(0), pflag.Arg(1)
	img, err := imgio.Open(srcPath)
	if err != nil {
		l.Fatalf("unable to open '%s': %v", srcPath, err)
	}
	input, err := frame.FromImage(img)
	if err != nil {
		l.Fatal(err)
	}

	var dev *gpu.Device
	if cfg.GPU {
		dev = gpu.NewDevice(ctx)
		defer dev.Close(ctx)
		if input, err = input.Upload(ctx, dev); err != nil {
			l.Fatal(err)
		}
	}

	tr, err := kernel.NewTransformation(ctx, opts)
	if err != nil {
		l.Fatal(err)
	}
	defer tr.Close(ctx)

	outputCh := make(chan packet.Output, 1)
	if err := tr.SendInputImage(ctx, packet.BuildImage(0, input), outputCh); err != nil {
		l.Fatal(err)
	}
	out := <-outputCh

	result := out.Frame
	if cfg.GPU {
		if result, err = result.Download(ctx); err != nil {
			l.Fatal(err)
		}
	}
	resultImg, err := result.ToImage()
	if err != nil {
		l.Fatal(err)
	}
	if err := imgio.Save(dstPath, resultImg, imgio.PNGEncoder()); err != nil {
		l.Fatalf("unable to save '%s': %v", dstPath, err)
	}
	l.Infof("resized %s -> %s", input, result)
}
