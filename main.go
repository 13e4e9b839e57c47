package main

import (
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kkerchmar/LinearPerspectiveTool/config"
	"github.com/kkerchmar/LinearPerspectiveTool/probe"
	"github.com/kkerchmar/LinearPerspectiveTool/toolbox"
)

const PROGRAM_NAME = "lpt"

func init() {
	// GL contexts are bound to the thread that made them current.
	runtime.LockOSThread()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

// toolForKey maps the number row, starting at 1, onto toolbox.Tools.
func toolForKey(k sdl.Keycode) (toolbox.Tool, bool) {
	i := int(k - sdl.K_1)
	if i < 0 || i >= len(toolbox.Tools) {
		return 0, false
	}
	return toolbox.Tools[i], true
}

func onIteration(event sdl.Event, c *Core) {
	switch ev := event.(type) {
	case *sdl.KeyboardEvent:
		if ev.Type != sdl.KEYUP {
			return
		}
		if tool, ok := toolForKey(ev.Keysym.Sym); ok {
			c.Tools.Select(tool)
		}
	case *sdl.MouseButtonEvent:
		if ev.Type != sdl.MOUSEBUTTONDOWN || ev.Button != sdl.BUTTON_LEFT {
			return
		}
		p := c.toSurface(ev.X, ev.Y)
		if err := c.Tools.Click(p); err != nil {
			log.Printf("Click at %v with %s: %v", p, c.Tools.Selected(), err)
		}
	}
}

func onDraw(deltaMs float64, c *Core) {
	if err := c.Renderer.Draw(deltaMs); err != nil {
		log.Panicf("Failed to draw frame: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           PROGRAM_NAME,
		Short:         "Draw points, lines, rays and segments over a perspective reference",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "lpt.toml", "path of the TOML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Open the drawing window (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(configPath)
			},
		},
		newTraceCmd(&configPath),
		&cobra.Command{
			Use:   "devices",
			Short: "List the GPUs visible through Vulkan",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				devices, err := probe.ListDevices()
				if err != nil {
					return err
				}
				return probe.Report(cmd.OutOrStdout(), devices)
			},
		},
	)
	return root
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Printf("Using GoLang: [%s]", runtime.Version())

	core := NewCore(cfg)
	core.Loop(
		onIteration,
		onDraw,
	)
	core.Destroy()
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%s: %v", PROGRAM_NAME, err)
	}
}
