package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/render/termrender"
	"github.com/plus3/blockfall/tetris"
)

const linger = 3 * time.Second

func main() {
	var flags config.Flags
	flags.Register(flag.CommandLine)
	logPath := flag.String("log", "", "Write logs to this file. Logs are discarded while the screen is active otherwise.")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	seed := flags.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	palette, err := render.NewPalette(cfg.Colors)
	if err != nil {
		log.Fatalf("Failed to build palette: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialise screen: %v", err)
	}

	stderr := log.Writer()
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			screen.Fini()
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	board, err := tetris.NewBoard(cfg, rand.New(rand.NewPCG(seed, seed)), tetris.WithLogger(slog.Default()))
	if err != nil {
		screen.Fini()
		log.SetOutput(stderr)
		log.Fatalf("Failed to create board: %v", err)
	}
	board.Subscribe(tetris.ListenerFunc(func(e tetris.Event) {
		if e.Type == tetris.EventStop {
			log.Printf("Board %s stopped: score=%d win=%t forced=%t\n", e.BoardID, e.Score, e.Win, e.ForceStopped)
		}
	}))

	renderer := termrender.New(screen, cfg, palette)
	sched := engine.NewRunScheduler(64)
	loop := engine.NewLoop(board, sched,
		engine.WithRenderer(renderer),
		engine.WithLogger(slog.Default()),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go pollEvents(screen, sched, loop, renderer, cancel)

	go func() {
		select {
		case <-loop.Done():
		case <-ctx.Done():
			return
		}
		select {
		case <-time.After(linger):
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Printf("Starting %dx%d board at %d ticks/s (seed %d)...\n", cfg.Cols, cfg.Rows, cfg.Speed, seed)
	sched.Post(loop.Start)
	runErr := sched.Run(ctx)

	screen.Fini()
	log.SetOutput(stderr)

	if runErr != nil && ctx.Err() == nil {
		log.Fatalf("Loop exited with error: %v", runErr)
	}
	log.Printf("Final score: %d (win=%t)\n", board.Score(), board.Win())
}

// pollEvents forwards terminal input to the loop goroutine until the screen
// is finalised.
func pollEvents(screen tcell.Screen, sched *engine.RunScheduler, loop *engine.Loop, renderer engine.Renderer, quit func()) {
	redraw := func() {
		loop.Flush()
		renderer.Render(loop.Frame())
	}

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		var fn func()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			fn = redraw
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				quit()
				return
			}
			if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
				quit()
				return
			}
			if ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P') {
				loop.Commands().TogglePause()
				fn = redraw
			} else if k, ok := termrender.Key(ev); ok {
				fn = func() { loop.DispatchKey(k) }
			}
		}

		if fn != nil && !sched.Post(fn) {
			return
		}
	}
}
