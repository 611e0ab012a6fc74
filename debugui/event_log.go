package debugui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// EventEntry is one logged board event.
type EventEntry struct {
	Tick  int64
	Event tetris.Event
}

func (e EventEntry) String() string {
	return fmt.Sprintf("#%d %s %s score=%d win=%t forced=%t",
		e.Tick, e.Event.BoardID, e.Event.Type, e.Event.Score, e.Event.Win, e.Event.ForceStopped)
}

// EventLog keeps the most recent board events. Subscribe it to a board
// and add it to an overlay.
type EventLog struct {
	mu         sync.Mutex
	maxEntries int
	entries    []EventEntry
	tick       int64

	filterText string
}

func NewEventLog(maxEntries int) *EventLog {
	return &EventLog{maxEntries: maxEntries}
}

// HandleEvent implements tetris.Listener.
func (el *EventLog) HandleEvent(e tetris.Event) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.entries = append(el.entries, EventEntry{Tick: el.tick, Event: e})
	if over := len(el.entries) - el.maxEntries; over > 0 {
		el.entries = append(el.entries[:0], el.entries[over:]...)
	}
}

// Entries returns the logged events whose text contains filter, oldest
// first. Matching is case-insensitive.
func (el *EventLog) Entries(filter string) []EventEntry {
	el.mu.Lock()
	defer el.mu.Unlock()

	if filter == "" {
		return append([]EventEntry(nil), el.entries...)
	}

	filterLower := strings.ToLower(filter)
	filtered := make([]EventEntry, 0, len(el.entries))
	for _, entry := range el.entries {
		if strings.Contains(strings.ToLower(entry.String()), filterLower) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Clear drops every logged event.
func (el *EventLog) Clear() {
	el.mu.Lock()
	el.entries = el.entries[:0]
	el.mu.Unlock()
}

func (el *EventLog) Render(frame *engine.Frame) {
	el.mu.Lock()
	el.tick = frame.Tick
	el.mu.Unlock()

	imgui.SetNextWindowPosV(imgui.NewVec2(380, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 220), imgui.CondOnce)
	if !imgui.BeginV("Event Log", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &el.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		el.Clear()
	}

	entries := el.Entries(el.filterText)
	imgui.Text(fmt.Sprintf("Total: %d events", len(entries)))
	imgui.Separator()

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Event.Type == tetris.EventStop {
			imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), entry.String())
			continue
		}
		imgui.Text(entry.String())
	}

	imgui.End()
}
