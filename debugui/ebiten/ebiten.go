// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/engine"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and the overlay it draws.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the Ebiten window through the ImGui backend. The
// imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       overlay,
	}
}

// Update builds one ImGui frame around the overlay windows.
func (b *ImguiBackend) Update(frame *engine.Frame) {
	b.BeginFrame()
	b.Overlay.Build(frame)
	b.EndFrame()
}

// WantsKeyboard reports whether ImGui consumed the keyboard last frame.
func (b *ImguiBackend) WantsKeyboard() bool {
	return b.Overlay.Input().WantCaptureKeyboard
}
