// Package debugui provides Dear ImGui inspector windows for a running game.
// Windows only read the board; every change they make is queued on the
// loop's command buffer.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

// Window renders one ImGui window for the current frame.
type Window interface {
	Render(frame *engine.Frame)
}

// WindowFunc adapts a plain function to Window.
type WindowFunc func(frame *engine.Frame)

func (f WindowFunc) Render(frame *engine.Frame) { f(frame) }

// InputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders a set of windows between the backend's BeginFrame and
// EndFrame.
type Overlay struct {
	windows []Window
	visible bool
	input   InputState
}

func NewOverlay(windows ...Window) *Overlay {
	return &Overlay{
		windows: windows,
		visible: true,
	}
}

// Add appends a window.
func (o *Overlay) Add(w Window) {
	o.windows = append(o.windows, w)
}

// Toggle flips visibility and returns the new value.
func (o *Overlay) Toggle() bool {
	o.visible = !o.visible
	return o.visible
}

func (o *Overlay) Visible() bool { return o.visible }

// Input returns the capture state observed by the last Build.
func (o *Overlay) Input() InputState {
	if !o.visible {
		return InputState{}
	}
	return o.input
}

// Build updates the input state and renders every window. Must be called
// inside an ImGui frame.
func (o *Overlay) Build(frame *engine.Frame) {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if !o.visible {
		return
	}
	for _, w := range o.windows {
		w.Render(frame)
	}
}

// Default returns the standard window set for loop: board inspector, loop
// stats, event log and controls.
func Default(loop *engine.Loop, log *EventLog) *Overlay {
	return NewOverlay(
		NewBoardInspector(),
		NewLoopStatsWindow(120),
		log,
		NewControls(loop),
	)
}
