package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/render/ebitenrender"
	"github.com/plus3/blockfall/tetris"
)

// linger is how long the final board stays on screen after the game stops.
const linger = 3 * time.Second

type Game struct {
	loop     *engine.Loop
	sched    *engine.StepScheduler
	renderer *ebitenrender.Renderer
	backend  *debugui_ebiten.ImguiBackend

	stoppedAt time.Duration
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.backend != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.backend.Overlay.Toggle()
	}

	cmds := g.loop.Commands()
	if g.backend == nil || !g.backend.WantsKeyboard() {
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			cmds.TogglePause()
		}
		for _, k := range ebitenrender.JustPressed() {
			cmds.Key(k)
		}
	}

	if g.loop.Flush() > 0 {
		g.renderer.Render(g.loop.Frame())
	}
	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))

	if g.backend != nil {
		g.backend.Update(g.loop.Frame())
	}

	if g.loop.Stopped() {
		if g.stoppedAt == 0 {
			g.stoppedAt = g.sched.Now()
		}
		if g.sched.Now()-g.stoppedAt >= linger {
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.renderer.Size()
}

func main() {
	var flags config.Flags
	flags.Register(flag.CommandLine)
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspector overlay (F1 toggles it).")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	seed := flags.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	board, err := tetris.NewBoard(cfg, rand.New(rand.NewPCG(seed, seed)), tetris.WithLogger(slog.Default()))
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}
	board.Subscribe(tetris.ListenerFunc(func(e tetris.Event) {
		switch e.Type {
		case tetris.EventScore:
			log.Printf("Board %s scored: %d\n", e.BoardID, e.Score)
		case tetris.EventStop:
			log.Printf("Board %s stopped: score=%d win=%t forced=%t\n", e.BoardID, e.Score, e.Win, e.ForceStopped)
		}
	}))

	palette, err := render.NewPalette(cfg.Colors)
	if err != nil {
		log.Fatalf("Failed to build palette: %v", err)
	}
	renderer := ebitenrender.New(cfg, palette)

	sched := engine.NewStepScheduler()
	loop := engine.NewLoop(board, sched,
		engine.WithRenderer(renderer),
		engine.WithLogger(slog.Default()),
	)

	game := &Game{
		loop:     loop,
		sched:    sched,
		renderer: renderer,
	}

	if *debug {
		events := debugui.NewEventLog(200)
		board.Subscribe(events)
		game.backend = debugui_ebiten.NewImguiBackend("blockfall (debug)", 1280, 720, debugui.Default(loop, events))
	} else {
		w, h := renderer.Size()
		ebiten.SetWindowSize(w*2, h*2)
		ebiten.SetWindowTitle("blockfall")
	}

	log.Printf("Starting %dx%d board at %d ticks/s (seed %d)...\n", cfg.Cols, cfg.Rows, cfg.Speed, seed)
	loop.Start()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited with error: %v", err)
	}
	log.Printf("Final score: %d\n", board.Score())
}
