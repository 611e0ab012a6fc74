package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

// LoopStatsWindow plots the duration of recent ticks.
type LoopStatsWindow struct {
	historyTicks int
	tickHistory  []float32
	tickIndex    int
	lastTick     int64
}

func NewLoopStatsWindow(historyTicks int) *LoopStatsWindow {
	return &LoopStatsWindow{
		historyTicks: historyTicks,
		tickHistory:  make([]float32, historyTicks),
	}
}

// Observe records the last tick duration when a new tick has run since the
// previous call.
func (ls *LoopStatsWindow) Observe(stats engine.LoopStats) {
	if stats.Ticks == ls.lastTick {
		return
	}
	ls.lastTick = stats.Ticks
	ls.tickHistory[ls.tickIndex] = float32(stats.LastDuration.Seconds() * 1000)
	ls.tickIndex = (ls.tickIndex + 1) % ls.historyTicks
}

// Samples returns the recorded durations in milliseconds, oldest first.
func (ls *LoopStatsWindow) Samples() []float32 {
	out := make([]float32, 0, ls.historyTicks)
	out = append(out, ls.tickHistory[ls.tickIndex:]...)
	return append(out, ls.tickHistory[:ls.tickIndex]...)
}

func (ls *LoopStatsWindow) Render(frame *engine.Frame) {
	ls.Observe(frame.Stats)

	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 260), imgui.CondOnce)
	if !imgui.BeginV("Loop Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := frame.Stats
	imgui.Text(fmt.Sprintf("Ticks: %d  Inputs: %d", stats.Ticks, stats.Inputs))
	imgui.Text(fmt.Sprintf("Interval: %s", stats.Interval))

	imgui.Separator()
	imgui.Text("Tick Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##ticktime", &ls.tickHistory[0], int32(len(ls.tickHistory)))

	if imgui.TreeNodeStr("Durations") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("TickDurations", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Measure")
			imgui.TableSetupColumn("Duration")
			imgui.TableHeadersRow()

			for _, row := range []struct {
				name string
				text string
			}{
				{"Min", stats.MinDuration.String()},
				{"Max", stats.MaxDuration.String()},
				{"Avg", stats.AvgDuration.String()},
				{"Last", stats.LastDuration.String()},
				{"Total", stats.TotalDuration.String()},
			} {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(row.name)
				imgui.TableNextColumn()
				imgui.Text(row.text)
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
