package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/tetris"
)

// Keys translates the Ebiten keys the game reacts to.
var Keys = map[ebiten.Key]tetris.Key{
	ebiten.KeyArrowLeft:  tetris.KeyLeft,
	ebiten.KeyArrowUp:    tetris.KeyUp,
	ebiten.KeyArrowRight: tetris.KeyRight,
	ebiten.KeyArrowDown:  tetris.KeyDown,
	ebiten.KeyA:          tetris.KeyA,
	ebiten.KeyD:          tetris.KeyD,
	ebiten.KeyS:          tetris.KeyS,
	ebiten.KeyW:          tetris.KeyW,
	ebiten.KeyZ:          tetris.KeyZ,
}

// JustPressed returns the game keys pressed since the previous tick.
func JustPressed() []tetris.Key {
	var pressed []tetris.Key
	for k, code := range Keys {
		if inpututil.IsKeyJustPressed(k) {
			pressed = append(pressed, code)
		}
	}
	return pressed
}
