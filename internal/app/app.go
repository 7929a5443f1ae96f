// Package app ties the editor buffer, the compile unit and the renderer
// together. It runs one frame at a time from an explicit Input value and
// reports what the window layer should show. Nothing in here talks to GLFW or
// OpenGL directly.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/irfansharif/shaderpad/internal/diag"
	"github.com/irfansharif/shaderpad/internal/render"
	"github.com/irfansharif/shaderpad/internal/shader"
)

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SHADERPAD_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

// Source is the editor buffer.
type Source interface {
	Path() string
	Reload() error
	Snapshot() string
}

// Compiler is the compile unit holding the live program.
type Compiler interface {
	Recompile(user string) (*shader.Program, error)
	Current() *shader.Program
	Markers() diag.Markers
	OK() bool
	Stats() shader.Stats
}

var _ Compiler = (*shader.Unit)(nil)

// Renderer draws a program into the panel-sized target.
type Renderer interface {
	Render(p *shader.Program, f render.Frame, w, h int) error
}

// Reporter shows compile outcomes to the user.
type Reporter interface {
	Succeeded(attempt int)
	CompileFailed(markers diag.Markers, user, rawLog string)
	LinkFailed(rawLog string)
}

// Status is what the window layer displays after a frame.
type Status struct {
	Compiled  bool         // at least one compile has been attempted
	OK        bool         // the last attempt succeeded
	Markers   diag.Markers // diagnostics of the last attempt, by user line
	LinkLog   string       // set if the last attempt failed to link
	ExitArmed bool
	Quit      bool
}

// Title renders the status for the window title.
func (s Status) Title(name string) string {
	var state string
	switch {
	case !s.Compiled:
		state = "compiling"
	case s.OK:
		state = "ok"
	case s.LinkLog != "":
		state = "link failed"
	default:
		state = fmt.Sprintf("%d error(s)", len(s.Markers))
		if sorted := s.Markers.Sorted(); len(sorted) > 0 && sorted[0].Line > 0 {
			state += fmt.Sprintf(", first on line %d", sorted[0].Line)
		}
	}
	title := fmt.Sprintf("%s (%s)", name, state)
	if s.ExitArmed {
		title += " - press Esc again to exit"
	}
	return title
}

// App encapsulates the main application state and logic.
type App struct {
	Source   Source
	Compiler Compiler
	Renderer Renderer
	Reporter Reporter
	Driver   *Driver

	status Status
}

// NewApp creates a new application instance.
func NewApp(src Source, compiler Compiler, renderer Renderer, reporter Reporter, driver *Driver) *App {
	return &App{
		Source:   src,
		Compiler: compiler,
		Renderer: renderer,
		Reporter: reporter,
		Driver:   driver,
	}
}

// Name returns a short name for the buffer being edited.
func (a *App) Name() string {
	if p := a.Source.Path(); p != "" {
		return filepath.Base(p)
	}
	return "untitled"
}

// Step runs a single frame: recompiles if asked to, then renders with
// whatever program is current. Compile and link failures are reported and
// recovered from; only rendering errors are returned.
func (a *App) Step(in Input) (Status, error) {
	frame, act := a.Driver.Update(in)
	a.status.ExitArmed = act.ExitArmed
	if act.Quit {
		a.status.Quit = true
		return a.status, nil
	}

	if act.Recompile {
		a.recompile()
	}

	w, h := in.Panel.Size()
	if err := a.Renderer.Render(a.Compiler.Current(), frame, w, h); err != nil {
		return a.status, fmt.Errorf("rendering frame %d: %w", frame.Index, err)
	}
	return a.status, nil
}

func (a *App) recompile() {
	if err := a.Source.Reload(); err != nil {
		// Keep going with what we had; the user sees why nothing changed.
		log.Printf("WARNING: %v", err)
	}
	user := a.Source.Snapshot()

	_, err := a.Compiler.Recompile(user)
	a.status.Compiled = true
	a.status.OK = a.Compiler.OK()
	a.status.Markers = a.Compiler.Markers()
	a.status.LinkLog = ""

	var compileErr *shader.CompileError
	var linkErr *shader.LinkError
	switch {
	case err == nil:
		a.Reporter.Succeeded(a.Compiler.Stats().Attempts)
	case errors.As(err, &compileErr):
		a.Reporter.CompileFailed(a.status.Markers, user, compileErr.Log)
	case errors.As(err, &linkErr):
		a.status.LinkLog = linkErr.Log
		a.Reporter.LinkFailed(linkErr.Log)
	default:
		a.status.LinkLog = err.Error()
		log.Printf("ERROR: recompile: %v", err)
	}
	runtimeLogger.Printf("recompiled %d byte(s): ok=%t", len(user), a.status.OK)
}
