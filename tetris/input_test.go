package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := tetris.DefaultKeyMap()

	tests := []struct {
		key  tetris.Key
		want tetris.Action
	}{
		{tetris.KeyLeft, tetris.ActionMoveLeft},
		{tetris.KeyA, tetris.ActionMoveLeft},
		{tetris.KeyRight, tetris.ActionMoveRight},
		{tetris.KeyD, tetris.ActionMoveRight},
		{tetris.KeyDown, tetris.ActionMoveDown},
		{tetris.KeyS, tetris.ActionMoveDown},
		{tetris.KeyUp, tetris.ActionRotateLeft},
		{tetris.KeyW, tetris.ActionRotateLeft},
		{tetris.KeyZ, tetris.ActionRotateRight},
		{tetris.KeyNone, tetris.ActionNone},
		{tetris.Key(13), tetris.ActionNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, km.Lookup(tt.key), "key %d", tt.key)
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range []tetris.Action{
		tetris.ActionMoveLeft,
		tetris.ActionMoveRight,
		tetris.ActionMoveDown,
		tetris.ActionRotateLeft,
		tetris.ActionRotateRight,
	} {
		got, ok := tetris.ParseAction(a.String())
		assert.True(t, ok, a.String())
		assert.Equal(t, a, got)
	}

	_, ok := tetris.ParseAction("none")
	assert.False(t, ok)
	_, ok = tetris.ParseAction("jump")
	assert.False(t, ok)
	assert.Equal(t, "unknown", tetris.Action(42).String())
}
