// SPDX-License-Identifier: EPL-2.0

// Command audgraph renders a YAML patch to a WAV file or to raw s16le PCM.
//
//	audgraph -o out.wav patch.yaml
//	audgraph -format pcm -o - patch.yaml | aplay -f S16_LE -r 44100 -c 2
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ik5/audgraph"
	"github.com/ik5/audgraph/formats/wav"
	"github.com/ik5/audgraph/internal/patch"
	"github.com/ik5/audgraph/sink"
)

// opener builds the sink for one output format. The returned cleanup runs
// after rendering.
type opener func(out string, c *audgraph.Context, buffers int) (audgraph.Sink, func() error, error)

var outputs = map[string]opener{
	"wav": openWav,
	"pcm": openPCM,
}

func main() {
	var (
		out     = flag.String("o", "out.wav", "output file, - for stdout (pcm only)")
		format  = flag.String("format", "", "output format: wav, pcm (default from -o extension)")
		buffers = flag.Int("buffers", sink.DefaultNumBuffers, "blocks queued ahead of a pcm writer")
		verbose = flag.Bool("v", false, "log debug messages")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] patch.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, flag.Arg(0), *out, *format, *buffers); err != nil {
		logger.Error("audgraph failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, patchPath, out, format string, buffers int) error {
	f, err := os.Open(patchPath)
	if err != nil {
		return err
	}
	p, err := patch.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}
	open, ok := outputs[format]
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}

	c, err := audgraph.NewContext(append(p.Options(), audgraph.WithLogger(logger))...)
	if err != nil {
		return err
	}

	if _, err := patch.Build(c, p, os.DirFS(filepath.Dir(patchPath))); err != nil {
		return err
	}
	if err := c.CloseAt(p.Duration); err != nil {
		return err
	}

	s, cleanup, err := open(out, c, buffers)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("rendering",
		"patch", patchPath,
		"output", out,
		"format", format,
		"duration", p.Duration,
	)

	runErr := c.Run(ctx, s)
	if err := cleanup(); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("interrupted", "time", c.CurrentTime())
		return nil
	}

	return runErr
}

func openWav(out string, c *audgraph.Context, _ int) (audgraph.Sink, func() error, error) {
	if out == "-" {
		return nil, nil, errors.New("wav output needs a seekable file")
	}

	f, err := os.Create(out)
	if err != nil {
		return nil, nil, err
	}

	return wav.NewSink(f, c.SampleRate(), c.Destination().ChannelCount()), f.Close, nil
}

func openPCM(out string, c *audgraph.Context, buffers int) (audgraph.Sink, func() error, error) {
	var w io.WriteCloser = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return nil, nil, err
		}
		w = f
	}

	bw := bufio.NewWriter(w)
	s := sink.NewPCM(bw, c.Destination().ChannelCount(), sink.WithNumBuffers(buffers))

	cleanup := func() error {
		if w == os.Stdout {
			return nil
		}
		return w.Close()
	}

	return s, cleanup, nil
}
