package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// game is one autoplayed board.
type game struct {
	board *tetris.Board
	loop  *engine.Loop
	sched *engine.StepScheduler
	rng   *rand.Rand
}

func newGame(cfg tetris.Config, seed uint64) (*game, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	board, err := tetris.NewBoard(cfg, rng)
	if err != nil {
		return nil, err
	}
	sched := engine.NewStepScheduler()
	g := &game{
		board: board,
		loop:  engine.NewLoop(board, sched),
		sched: sched,
		rng:   rng,
	}
	g.loop.Start()
	return g, nil
}

// step feeds one random action and advances one tick.
func (g *game) step() {
	g.loop.Dispatch(tetris.Action(g.rng.IntN(int(tetris.ActionRotateRight)) + 1))
	g.sched.Advance(g.loop.Interval())
}

func main() {
	var flags config.Flags
	flags.Register(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	games := flag.Int("games", 8, "The number of boards played side by side.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.Quiet = true

	seed := flags.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.Println("Starting blockfall stress test...")

	// 1. Set up the boards
	log.Printf("Creating %d boards (%dx%d, seed %d)...\n", *games, cfg.Cols, cfg.Rows, seed)
	next := seed
	active := make([]*game, *games)
	for i := range active {
		if active[i], err = newGame(cfg, next); err != nil {
			log.Fatalf("Failed to create board: %v", err)
		}
		next++
	}

	// 2. Run the boards until the deadline, replacing finished games
	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Cols:           cfg.Cols,
		Rows:           cfg.Rows,
		Seed:           seed,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			for i, g := range active {
				g.step()
				if !g.loop.Stopped() {
					continue
				}

				stats := g.loop.Stats()
				report.AddGame(GameResult{
					Score:   g.board.Score(),
					Win:     g.board.Win(),
					Ticks:   stats.Ticks,
					Inputs:  stats.Inputs,
					AvgTick: stats.AvgDuration,
				})

				if active[i], err = newGame(cfg, next); err != nil {
					log.Fatalf("Failed to create board: %v", err)
				}
				next++
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	for _, g := range active {
		report.Unfinished += g.loop.Stats().Ticks
	}
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
