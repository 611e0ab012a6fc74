package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSummary(t *testing.T) {
	r := &Report{TotalTime: 2 * time.Second}
	r.AddGame(GameResult{Score: 4, Ticks: 100, Inputs: 90, AvgTick: time.Microsecond})
	r.AddGame(GameResult{Score: 1, Win: true, Ticks: 60, Inputs: 50, AvgTick: 3 * time.Microsecond})
	r.AddGame(GameResult{Score: 7})
	r.Unfinished = 40
	r.Finalize()

	assert.Equal(t, 3, r.GamesPlayed())
	assert.Equal(t, 1, r.Wins())
	assert.Equal(t, int64(160), r.TotalTicks)
	assert.Equal(t, int64(140), r.TotalInputs)
	assert.Equal(t, ScoreStats{Min: 1, Max: 7, Avg: 4, Total: 12}, r.Score)
	assert.Equal(t, TickStats{Min: time.Microsecond, Max: 3 * time.Microsecond, Avg: 2 * time.Microsecond}, r.TickTime)
	assert.InDelta(t, 100.0, r.TicksPerSecond(), 1e-9)
}

func TestReportFinalizeWithoutGames(t *testing.T) {
	r := &Report{}
	r.Finalize()

	assert.Zero(t, r.Score)
	assert.Zero(t, r.TickTime)
	assert.Zero(t, r.TicksPerSecond())
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration: time.Second,
		Games:    2,
		Cols:     10,
		Rows:     15,
		Seed:     42,
	}
	r.AddGame(GameResult{Score: 3, Ticks: 10, AvgTick: time.Microsecond})
	r.Finalize()

	var sb strings.Builder
	require.NoError(t, r.Generate(&sb))

	out := sb.String()
	assert.Contains(t, out, "# Blockfall Stress Test Report")
	assert.Contains(t, out, "**Board Size:** 10x15")
	assert.Contains(t, out, "**Games Finished:** 1")
	assert.Contains(t, out, "**Avg:** 3.00")
	assert.NotContains(t, out, "GC Pause Durations")
}
