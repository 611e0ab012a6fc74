package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/render"
)

// BoardInspector shows the board flags, the active piece and the raw grid
// codes, each cell tinted with its palette colour.
type BoardInspector struct {
	palette *render.Palette
}

func NewBoardInspector() *BoardInspector {
	return &BoardInspector{}
}

func (bi *BoardInspector) Render(frame *engine.Frame) {
	b := frame.Board
	if bi.palette == nil {
		bi.palette = render.MustPalette(b.Config().Colors)
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Board Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Board: %s (%dx%d)", b.ID(), b.Cols(), b.Rows()))
	imgui.Text(fmt.Sprintf("Score: %d", b.Score()))
	imgui.Text(fmt.Sprintf("Paused: %t  Game over: %t", b.Paused(), b.GameOver()))
	imgui.Text(fmt.Sprintf("Win: %t  Forced: %t", b.Win(), b.ForceStopped()))

	if p := b.Piece(); p != nil && imgui.TreeNodeStr("Active Piece") {
		imgui.BulletText(fmt.Sprintf("Kind: %s (%s)", p.Kind(), p.Shape().Rotation))
		imgui.BulletText(fmt.Sprintf("Anchor: (%d, %d)", p.Anchor().Col, p.Anchor().Row))
		imgui.BulletText(fmt.Sprintf("Locked: %t  Spawning: %t", p.Locked(), b.Spawning()))
		imgui.TreePop()
	}

	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("BoardGrid", int32(b.Cols()), tableFlags, imgui.NewVec2(0, 0), 0) {
		for row := 0; row < b.Rows(); row++ {
			imgui.TableNextRow()
			for col := 0; col < b.Cols(); col++ {
				imgui.TableNextColumn()
				code := b.Cell(col, row)
				c, ok := bi.palette.Color(code)
				if !ok {
					imgui.Text(fmt.Sprintf("%d", code))
					continue
				}
				imgui.TextColored(imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1), fmt.Sprintf("%d", code))
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}
