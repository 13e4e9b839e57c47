package main

import (
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/kkerchmar/LinearPerspectiveTool/common"
	"github.com/kkerchmar/LinearPerspectiveTool/config"
	"github.com/kkerchmar/LinearPerspectiveTool/gpu/glcontext"
	"github.com/kkerchmar/LinearPerspectiveTool/model"
	"github.com/kkerchmar/LinearPerspectiveTool/renderer"
	"github.com/kkerchmar/LinearPerspectiveTool/toolbox"
)

type iterationHandler func(event sdl.Event, c *Core)
type drawHandler func(deltaMs float64, c *Core)

// Core bundles the window, its GL context and the drawing state that lives as
// long as the window does.
type Core struct {
	Win      *common.Window
	GL       *glcontext.Context
	Model    *model.Model
	Tools    *toolbox.Toolbox
	Renderer *renderer.Renderer
}

func NewCore(cfg config.Config) *Core {
	win := common.NewWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Window.VSync)
	ctx, err := glcontext.New(win)
	if err != nil {
		log.Panicf("Failed to load OpenGL: %v", err)
	}

	m := model.NewModel()
	r, err := renderer.NewRenderer(ctx, m,
		renderer.WithLineWidth(cfg.Render.LineWidth),
		renderer.WithClearColor(cfg.Render.ClearColor),
	)
	if err != nil {
		log.Panicf("Failed to set up renderer: %v", err)
	}

	c := &Core{
		Win:      win,
		GL:       ctx,
		Model:    m,
		Tools:    toolbox.New(m, cfg.DefaultTool()),
		Renderer: r,
	}
	log.Printf("Active tool: %s", c.Tools.Selected())
	return c
}

// Loop polls events and draws frames until the window is closed. Escape first
// cancels a pending gesture and only closes the window when there is none.
func (c *Core) Loop(ih iterationHandler, dh drawHandler) {
	t0 := time.Now()
	last := t0
	frames := 0
	var event sdl.Event
	c.Win.Close = false
	for !c.Win.Close {
		for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				c.Win.Close = true
			case *sdl.WindowEvent:
				if ev.Event == sdl.WINDOWEVENT_RESIZED {
					c.Win.Resized = true
				} else if ev.Event == sdl.WINDOWEVENT_MINIMIZED {
					c.Win.Minimized = true
				} else if ev.Event == sdl.WINDOWEVENT_RESTORED {
					c.Win.Minimized = false
				}
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
					if c.Tools.Cancel() {
						log.Println("Cancelled gesture")
					} else {
						c.Win.Close = true
					}
				}
			}
			ih(event, c)
		}
		if !c.Win.Minimized {
			now := time.Now()
			dh(float64(now.Sub(last).Microseconds())/1000, c)
			last = now
			c.Win.Swap()
			c.Win.Resized = false
			frames++
		} else {
			// Sleep until new events change c.Win.Minimized
			sdl.WaitEvent()
			last = time.Now()
		}
	}
	dt := time.Since(t0)
	log.Printf("Elapsed: %v, rough avg fps: %v fps", dt, float64(frames)/dt.Seconds())
}

// toSurface maps window coordinates to drawing buffer pixels. The two differ
// on high density displays.
func (c *Core) toSurface(x int32, y int32) model.Point {
	ww, wh := c.Win.Win.GetSize()
	dw, dh := c.Win.DrawableSize()
	if ww == 0 || wh == 0 {
		return model.NewPoint(float32(x), float32(y))
	}
	return model.NewPoint(
		float32(x)*float32(dw)/float32(ww),
		float32(y)*float32(dh)/float32(wh),
	)
}

func (c *Core) Destroy() {
	c.Renderer.Dispose()
	c.GL.Destroy()
	c.Win.Destroy()
	log.Printf("Final model: %d points, %d lines, %d rays, %d segments",
		len(c.Model.Points()), len(c.Model.Lines()), len(c.Model.Rays()), len(c.Model.Segments()))
}
