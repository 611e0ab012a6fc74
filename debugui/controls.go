package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

// Controls pauses, resumes, stops and retunes the loop. Every action is
// queued and applied on the next flush.
type Controls struct {
	loop  *engine.Loop
	speed int32
	quiet bool
}

func NewControls(loop *engine.Loop) *Controls {
	return &Controls{loop: loop, speed: int32(loop.Speed()), quiet: loop.Quiet()}
}

func (c *Controls) Render(frame *engine.Frame) {
	b := frame.Board
	cmds := frame.Commands

	imgui.SetNextWindowPosV(imgui.NewVec2(710, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(250, 200), imgui.CondOnce)
	if !imgui.BeginV("Game Control", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	switch {
	case b.GameOver():
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "STOPPED")
	case b.Paused():
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.3, 0.8, 0.3, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.1, 0.6, 0.1, 1.0))
		if imgui.Button("Resume") {
			cmds.SetPaused(false)
		}
		imgui.PopStyleColor()
		imgui.PopStyleColor()
		imgui.PopStyleColor()

		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
	default:
		if imgui.Button("Pause") {
			cmds.SetPaused(true)
		}
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	imgui.Separator()
	imgui.Text("Force Stop:")
	if imgui.Button("Win") {
		cmds.ForceStop(true)
	}
	imgui.SameLine()
	if imgui.Button("Lose") {
		cmds.ForceStop(false)
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Speed: %d ticks/s", c.loop.Speed()))
	imgui.SetNextItemWidth(120)
	if imgui.InputInt("##speed", &c.speed) && c.speed > 0 {
		cmds.SetSpeed(int(c.speed))
	}

	if imgui.Checkbox("Quiet", &c.quiet) {
		quiet := c.quiet
		cmds.Defer(func() { c.loop.SetQuiet(quiet) })
	}

	imgui.End()
}
