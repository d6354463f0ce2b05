package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/pointdrift/pointdrift/app"
	"github.com/pointdrift/pointdrift/config"
	"github.com/pointdrift/pointdrift/core"
	"github.com/pointdrift/pointdrift/logging"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	background := flag.String("background", "", "Background image path (overrides config)")
	points := flag.Int("points", 0, "Point count (overrides config)")
	basic := flag.Bool("basic", false, "Use the minimal hard-edged point renderer")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logging.NewDefaultLogger("pointdrift", *debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("config: %v", err)
		os.Exit(1)
	}
	if *background != "" {
		cfg.Background = *background
	}
	if *points > 0 {
		cfg.PointCount = *points
	}
	if *basic {
		cfg.BasicRenderer = true
	}
	if *debug {
		cfg.Debug = true
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "pointdrift", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	application := app.New(window, log)
	if err := application.Init(cfg); err != nil {
		log.Errorf("init: %v", err)
		os.Exit(1)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		application.Resize(width, height)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
		if key == glfw.KeyB && action == glfw.Press {
			// Nudge the billboards a pixel larger; shift+B shrinks.
			size := cfg.PointSize + 1
			if mods&glfw.ModShift != 0 {
				size = cfg.PointSize - 1
			}
			if size >= 1 {
				cfg.PointSize = size
				application.SetStyle(core.Style{PointSize: size, Intensity: cfg.Intensity})
			}
		}
	})

	lastTime := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := float32(now - lastTime)
		lastTime = now

		application.Update(dt)
		if err := application.Render(); err != nil {
			// No defined recovery for a broken graphics context.
			log.Errorf("render: %v", err)
			os.Exit(1)
		}
	}
}
