package renderer

import (
	"log"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
	"github.com/kkerchmar/LinearPerspectiveTool/model"
)

const (
	defaultLineWidth = 10
	placeholderRange = 400
)

var defaultClearColor = [4]float32{0.9, 0.9, 0.9, 1}

var (
	placeholderStart = model.NewPoint(40, 200)
	placeholderEnd   = model.NewPoint(800, placeholderRange)
)

type Option func(*Renderer)

// WithLineWidth sets the thickness every line is drawn with.
func WithLineWidth(width float32) Option {
	return func(r *Renderer) {
		r.lineWidth = width
	}
}

func WithClearColor(color [4]float32) Option {
	return func(r *Renderer) {
		r.clearColor = color
	}
}

// Stats describes the frames drawn so far.
type Stats struct {
	Frames uint64
	// Lines drawn in the last frame.
	Lines int
}

// Renderer draws one frame per tick: the reference cube first, then the lines
// of the model. Without a model it animates a single placeholder line.
type Renderer struct {
	ctx   gpu.Context
	model *model.Model

	cube *CubeMesh
	line *LineMesh

	lineWidth  float32
	clearColor [4]float32
	stats      Stats
	disposed   bool
}

func NewRenderer(ctx gpu.Context, m *model.Model, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		ctx:        ctx,
		model:      m,
		lineWidth:  defaultLineWidth,
		clearColor: defaultClearColor,
	}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.cube, err = NewCubeMesh(ctx); err != nil {
		return nil, err
	}
	if r.line, err = NewLineMesh(ctx, r.lineWidth, placeholderStart, placeholderEnd); err != nil {
		r.cube.Dispose()
		return nil, err
	}
	log.Printf("Created renderer (line width %g)", r.lineWidth)
	return r, nil
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// Draw renders one frame. deltaMs is the time since the previous frame.
func (r *Renderer) Draw(deltaMs float64) error {
	if r.disposed {
		return ErrDisposed
	}

	w, h := r.ctx.DrawableSize()
	r.ctx.Viewport(0, 0, w, h)
	r.ctx.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	r.ctx.ClearDepth(1)
	r.ctx.Enable(gpu.DepthTest)
	r.ctx.DepthFunc(gpu.LessEqual)
	r.ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	r.cube.Update(deltaMs)
	if err := r.cube.Draw(); err != nil {
		return err
	}

	lines, err := r.drawLines()
	if err != nil {
		return err
	}
	r.stats.Frames++
	r.stats.Lines = lines
	return nil
}

func (r *Renderer) drawLines() (int, error) {
	if r.model == nil {
		end := r.line.End()
		r.line.SetStart(placeholderStart)
		r.line.SetEnd(model.NewPoint(end.X, float32((int(end.Y)+1)%placeholderRange)))
		return 1, r.drawLine()
	}

	lines := r.model.Lines()
	for _, l := range lines {
		r.line.SetStart(l.P1)
		r.line.SetEnd(l.P2)
		if err := r.drawLine(); err != nil {
			return 0, err
		}
	}
	return len(lines), nil
}

func (r *Renderer) drawLine() error {
	r.line.SetWidth(r.lineWidth)
	r.line.Update()
	return r.line.Draw()
}

// Dispose releases every mesh the renderer owns. Drawing afterwards fails
// with ErrDisposed.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.cube.Dispose()
	r.line.Dispose()
	r.disposed = true
	log.Printf("Disposed renderer after %d frames", r.stats.Frames)
}
