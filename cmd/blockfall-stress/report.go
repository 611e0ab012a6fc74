package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

// GameResult summarises one finished board.
type GameResult struct {
	Score   int
	Win     bool
	Ticks   int64
	Inputs  int64
	AvgTick time.Duration
}

type Report struct {
	// Configuration
	Duration time.Duration
	Games    int
	Cols     int
	Rows     int
	Seed     uint64

	// Results
	Results        []GameResult
	TotalTicks     int64
	TotalInputs    int64
	Unfinished     int64
	TotalTime      time.Duration
	TickTime       TickStats
	Score          ScoreStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// TickStats summarises the average tick time of each finished game.
type TickStats struct {
	Min time.Duration
	Max time.Duration
	Avg time.Duration
}

// ScoreStats summarises final scores.
type ScoreStats struct {
	Min   int
	Max   int
	Avg   float64
	Total int
}

// AddGame records a finished game.
func (r *Report) AddGame(res GameResult) {
	r.Results = append(r.Results, res)
	r.TotalTicks += res.Ticks
	r.TotalInputs += res.Inputs
}

// Finalize computes the score and tick time summaries. Games that never
// ticked are left out of the tick time.
func (r *Report) Finalize() {
	r.Score = ScoreStats{}
	r.TickTime = TickStats{}

	var tickTotal time.Duration
	ticked := 0
	for i, res := range r.Results {
		if i == 0 || res.Score < r.Score.Min {
			r.Score.Min = res.Score
		}
		r.Score.Max = max(r.Score.Max, res.Score)
		r.Score.Total += res.Score

		if res.Ticks == 0 {
			continue
		}
		if ticked == 0 || res.AvgTick < r.TickTime.Min {
			r.TickTime.Min = res.AvgTick
		}
		r.TickTime.Max = max(r.TickTime.Max, res.AvgTick)
		tickTotal += res.AvgTick
		ticked++
	}

	if len(r.Results) > 0 {
		r.Score.Avg = float64(r.Score.Total) / float64(len(r.Results))
	}
	if ticked > 0 {
		r.TickTime.Avg = tickTotal / time.Duration(ticked)
	}
}

// GamesPlayed is the number of boards that reached game over.
func (r *Report) GamesPlayed() int {
	return len(r.Results)
}

// Wins counts finished games flagged as won.
func (r *Report) Wins() int {
	n := 0
	for _, res := range r.Results {
		if res.Win {
			n++
		}
	}
	return n
}

// TicksPerSecond is the simulated tick throughput over the whole run.
func (r *Report) TicksPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalTicks+r.Unfinished) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Concurrent Boards:** {{.Games}}
- **Board Size:** {{.Cols}}x{{.Rows}}
- **Seed:** {{.Seed}}

## Game Results
- **Games Finished:** {{.GamesPlayed}}
- **Wins:** {{.Wins}}
- **Score:**
  - **Avg:** {{printf "%.2f" .Score.Avg}}
  - **Min:** {{.Score.Min}}
  - **Max:** {{.Score.Max}}
  - **Total:** {{.Score.Total}}

## Performance Results
- **Ticks (finished games):** {{.TotalTicks}}
- **Ticks (games still running):** {{.Unfinished}}
- **Inputs:** {{.TotalInputs}}
- **Total Test Time:** {{.TotalTime}}
- **Throughput:** {{printf "%.0f" .TicksPerSecond}} ticks/s
- **Tick Time (per-game average):**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
