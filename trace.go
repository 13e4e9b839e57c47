package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kkerchmar/LinearPerspectiveTool/config"
	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
	"github.com/kkerchmar/LinearPerspectiveTool/model"
	"github.com/kkerchmar/LinearPerspectiveTool/renderer"
)

type traceOptions struct {
	frames  int
	width   int32
	height  int32
	deltaMs float64
	lines   []string
}

func newTraceCmd(configPath *string) *cobra.Command {
	opts := traceOptions{}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Render frames without a window and print the GL call log as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the YAML document
			log.SetOutput(cmd.ErrOrStderr())

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return trace(cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", 1, "number of frames to render")
	cmd.Flags().Int32Var(&opts.width, "width", 800, "drawing buffer width in pixels")
	cmd.Flags().Int32Var(&opts.height, "height", 600, "drawing buffer height in pixels")
	cmd.Flags().Float64Var(&opts.deltaMs, "delta", 1000.0/60, "milliseconds between frames")
	cmd.Flags().StringArrayVar(&opts.lines, "line", nil, "line to add to the model as x1,y1,x2,y2 (repeatable)")
	return cmd
}

// trace renders opts.frames frames against a Recorder. Without --line flags
// no model is attached and the placeholder line is drawn instead.
func trace(w io.Writer, cfg config.Config, opts traceOptions) error {
	if opts.frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", opts.frames)
	}

	var m *model.Model
	if len(opts.lines) > 0 {
		m = model.NewModel()
		for _, s := range opts.lines {
			l, err := parseLine(s)
			if err != nil {
				return err
			}
			m.Begin(l.P1)
			if err := m.EndLine(l.P2); err != nil {
				return err
			}
		}
	}

	rec := gpu.NewRecorder(opts.width, opts.height)
	r, err := renderer.NewRenderer(rec, m,
		renderer.WithLineWidth(cfg.Render.LineWidth),
		renderer.WithClearColor(cfg.Render.ClearColor),
	)
	if err != nil {
		return err
	}
	for i := 0; i < opts.frames; i++ {
		if err := r.Draw(opts.deltaMs); err != nil {
			return err
		}
	}
	r.Dispose()

	if len(rec.Errors) > 0 {
		log.Printf("Recorded %d GL misuse errors", len(rec.Errors))
	}
	return rec.WriteYAML(w)
}

func parseLine(s string) (model.Line, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Line{}, fmt.Errorf("line %q: want x1,y1,x2,y2", s)
	}
	var v [4]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return model.Line{}, fmt.Errorf("line %q: %w", s, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return model.Line{}, fmt.Errorf("line %q: coordinate %q is not finite", s, p)
		}
		v[i] = float32(f)
	}
	return model.Line{P1: model.NewPoint(v[0], v[1]), P2: model.NewPoint(v[2], v[3])}, nil
}
