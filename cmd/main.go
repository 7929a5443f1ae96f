package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/shaderpad/internal/app"
	"github.com/irfansharif/shaderpad/internal/cli"
	"github.com/irfansharif/shaderpad/internal/config"
	"github.com/irfansharif/shaderpad/internal/diag"
	"github.com/irfansharif/shaderpad/internal/gpu"
	"github.com/irfansharif/shaderpad/internal/harness"
	"github.com/irfansharif/shaderpad/internal/palette"
	"github.com/irfansharif/shaderpad/internal/render"
	"github.com/irfansharif/shaderpad/internal/shader"
	"github.com/irfansharif/shaderpad/internal/source"
)

const logFlags = log.Ltime | log.Lshortfile

// Exit codes for the window and GL stages; the command line owns the rest.
const (
	exitGLFW    = 1
	exitWindow  = 2
	exitGL      = 3
	exitHarness = 4
)

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("SHADERPAD_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func main() {
	os.Exit(cli.Execute(cli.NewRootCmd(run)))
}

func exitError(code int, format string, args ...interface{}) error {
	return &cli.ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func colorize(setting string) bool {
	switch setting {
	case "on":
		return true
	case "off":
		return false
	default:
		return !color.NoColor
	}
}

func makeTitle(status app.Status, name string, fps float64) string {
	return fmt.Sprintf("shaderpad: %s (%.1f FPS)", status.Title(name), fps)
}

func run(cfg config.Config) error {
	var buf *source.Buffer
	if cfg.Shader.Path != "" {
		var err error
		if buf, err = source.Open(cfg.Shader.Path); err != nil {
			return exitError(cli.ExitConfig, "failed to open shader: %w", err)
		}
	} else {
		buf = source.NewBuffer(source.Starter)
	}

	if err := glfw.Init(); err != nil {
		return exitError(exitGLFW, "failed to initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return exitError(exitWindow, "failed to create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return exitError(exitGL, "failed to initialize OpenGL: %w", err)
	}
	runtimeLogger.Printf("OpenGL %s, GLSL %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	h := harness.New(cfg.Shader.GLSLVersion)
	unit, err := shader.NewUnit(gpu.ShaderBackend{}, h, diag.GLSLParser{})
	if err != nil {
		return exitError(exitHarness, "failed to compile the harness: %w", err)
	}
	defer unit.Close()
	runtimeLogger.Printf("harness %q: user code starts on line %d", unit.Harness().Version(), unit.Harness().PrologueLines()+1)

	device := gpu.NewDevice()
	defer device.Close()
	renderer := render.NewRenderer(device)
	defer renderer.Close()

	var watcher *source.Watcher
	if cfg.Shader.Watch && buf.Path() != "" {
		if watcher, err = source.Watch(buf.Path()); err != nil {
			log.Printf("WARNING: not watching %s: %v", buf.Path(), err)
		} else {
			defer watcher.Close()
		}
	}

	reporter := diag.NewReporter(os.Stdout, colorize(cfg.Log.Color))
	application := app.NewApp(buf, unit, renderer, reporter, app.NewDriver(nil))

	scale, _ := window.GetContentScale()
	fw, fh := window.GetFramebufferSize()
	view := app.NewView(fw, fh, scale)

	// Initialize event handlers.
	eventHandlers := NewEventHandlers(window, view, watcher)

	frameCount := 0
	lastFPSUpdate := time.Now()
	fps := 0.0
	lastTitle := ""

	// Main loop.
	for {
		glfw.PollEvents()
		in := eventHandlers.Input()

		status, err := application.Step(in)
		if err != nil {
			log.Printf("ERROR: %v", err)
		}
		if status.Quit {
			return nil
		}

		// Present: background, shader output in the panel, status strip.
		device.Clear(view.Width, view.Height, palette.Background)
		if target := renderer.Target(); target != nil {
			device.Present(target, view.Panel())
		}
		device.FillRect(view.Strip(), palette.Status(status.Compiled, status.OK, status.ExitArmed))
		window.SwapBuffers()

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps = float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			frameCount = 0
			lastFPSUpdate = now

			stats := renderer.Stats()
			runtimeLogger.Printf("%.1f FPS, frame %d, %.2fµs/draw, %d reallocation(s), %d compile(s)",
				fps, application.Driver.Frames(), stats.LastDrawTimeUs, stats.Reallocations, unit.Stats().Attempts)
		}
		if title := makeTitle(status, application.Name(), fps); title != lastTitle {
			window.SetTitle(title)
			lastTitle = title
		}
	}
}
