package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/shaderpad/internal/app"
	"github.com/irfansharif/shaderpad/internal/source"
)

// EventHandlers folds GLFW callbacks into the next app.Input.
type EventHandlers struct {
	window  *glfw.Window
	view    *app.View
	watcher *source.Watcher // nil if not watching

	// One-shot gestures, cleared once handed out.
	save, exit bool

	// Current pointer state, in window coordinates.
	cursorX, cursorY float64
	left, right      bool
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(window *glfw.Window, view *app.View, watcher *source.Watcher) *EventHandlers {
	eh := &EventHandlers{
		window:  window,
		view:    view,
		watcher: watcher,
	}
	eh.SetupCallbacks(window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods)
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.cursorX, eh.cursorY = xpos, ypos
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.view.SetViewport(newW, newH)
	})
	window.SetFocusCallback(func(wnd *glfw.Window, focused bool) {
		if !focused {
			// Releases happen elsewhere; don't leave buttons stuck down.
			eh.left, eh.right = false, false
		}
	})
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		eh.exit = true
	case glfw.KeyS:
		if mods&(glfw.ModControl|glfw.ModSuper) != 0 {
			eh.save = true
		}
	}
}

// handleMouseButton tracks which buttons are held.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	down := action == glfw.Press
	switch button {
	case glfw.MouseButtonLeft:
		eh.left = down
	case glfw.MouseButtonRight:
		eh.right = down
	}
}

// Input returns everything observed since the last call, and resets the
// one-shot gestures.
func (eh *EventHandlers) Input() app.Input {
	save := eh.save
	if eh.watcher != nil && eh.watcher.Changed() {
		save = true
	}
	scaleX, scaleY := eh.window.GetContentScale()
	in := app.Input{
		Save:         save,
		Exit:         eh.exit,
		Close:        eh.window.ShouldClose(),
		CursorX:      eh.cursorX,
		CursorY:      eh.cursorY,
		Left:         eh.left,
		Right:        eh.right,
		Panel:        eh.view.Panel(),
		FramebufferH: eh.view.Height,
		ScaleX:       scaleX,
		ScaleY:       scaleY,
	}
	eh.save, eh.exit = false, false
	return in
}
