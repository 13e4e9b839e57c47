package common

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/sdl"
)

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

// GL_MAJOR and GL_MINOR select the core profile the shaders are written for.
const GL_MAJOR, GL_MINOR = 3, 3

// Window encapsulates the SDL window and the OpenGL context drawing into it.
// Resized, Minimized and Close are set by the event loop.
type Window struct {
	sdlVersion string

	Win       *sdl.Window
	GLCtx     sdl.GLContext
	Resized   bool
	Minimized bool
	Close     bool
}

// NewWindow opens a resizable window with a current OpenGL core context. On
// tear down both have to be released with Destroy.
func NewWindow(title string, w int32, h int32, vsync bool) *Window {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
	}
	window.initSDLWindow(title, w, h)
	window.createGLContext(vsync)
	log.Printf("Generated SDL/OpenGL window - SDL: %s OpenGL: %d.%d core", window.sdlVersion, GL_MAJOR, GL_MINOR)
	return window
}

// Destroy tears down the GL context, the window and SDL itself.
func (w *Window) Destroy() {
	sdl.GLDeleteContext(w.GLCtx)
	err := w.Win.Destroy()
	if err != nil {
		log.Fatal(err)
	}
	sdl.Quit()
}

// DrawableSize is the size of the drawing buffer in pixels, which differs from
// the window size on high density displays.
func (w *Window) DrawableSize() (int32, int32) {
	return w.Win.GLGetDrawableSize()
}

func (w *Window) Swap() {
	w.Win.GLSwap()
}

func (w *Window) initSDLWindow(title string, width int32, height int32) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Panicf("Failed to initialize SDL: %v", err)
	}
	log.Println("Initialized SDL")

	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, GL_MAJOR},
		{sdl.GL_CONTEXT_MINOR_VERSION, GL_MINOR},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			log.Panicf("Failed to set GL attribute %d: %v", a.attr, err)
		}
	}

	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		log.Panicf("Failed to create SDL window for use with OpenGL: %v", err)
	}
	log.Printf("Created SDL window for use with OpenGL. Title: \"%s\", Width: %d, Height: %d", title, width, height)
	w.Win = win
}

func (w *Window) createGLContext(vsync bool) {
	ctx, err := w.Win.GLCreateContext()
	if err != nil {
		log.Panicf("Failed to create OpenGL context: %v", err)
	}
	if err := w.Win.GLMakeCurrent(ctx); err != nil {
		log.Panicf("Failed to make OpenGL context current: %v", err)
	}
	w.GLCtx = ctx

	interval := 0
	if vsync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Printf("Failed to set swap interval %d, continuing without: %v", interval, err)
	}
}
