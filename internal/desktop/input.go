package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"soccer/internal/game"
)

// keyNames maps glfw keys to the names game.Controls.Bind understands.
var keyNames = map[glfw.Key]string{
	glfw.KeyA:     game.KeyA,
	glfw.KeyD:     game.KeyD,
	glfw.KeyW:     game.KeyW,
	glfw.KeyLeft:  game.KeyLeft,
	glfw.KeyRight: game.KeyRight,
	glfw.KeyUp:    game.KeyUp,
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

// JustPressed reports a key that went down since the previous call.
func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Controls samples both players' held keys.
func (in *Input) Controls(window *glfw.Window) game.Controls {
	var c game.Controls
	for key, name := range keyNames {
		c.Bind(name, window.GetKey(key) == glfw.Press)
	}
	return c
}
