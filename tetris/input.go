package tetris

// Action is a normalized input command.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionRotateLeft
	ActionRotateRight
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionMoveLeft:    "move-left",
	ActionMoveRight:   "move-right",
	ActionMoveDown:    "move-down",
	ActionRotateLeft:  "rotate-left",
	ActionRotateRight: "rotate-right",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction returns the action named by s (as printed by String).
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s && Action(i) != ActionNone {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// apply performs the piece-local operation for a.
func (a Action) apply(p *Piece) {
	switch a {
	case ActionMoveLeft:
		p.MoveLeft()
	case ActionMoveRight:
		p.MoveRight()
	case ActionMoveDown:
		p.MoveDown()
	case ActionRotateLeft:
		p.RotateLeft()
	case ActionRotateRight:
		p.RotateRight()
	}
}

// revert performs the exact inverse of apply.
func (a Action) revert(p *Piece) {
	switch a {
	case ActionMoveLeft:
		p.MoveRight()
	case ActionMoveRight:
		p.MoveLeft()
	case ActionMoveDown:
		p.MoveUp()
	case ActionRotateLeft:
		p.RotateRight()
	case ActionRotateRight:
		p.RotateLeft()
	}
}

// Key is a platform-neutral key code. The values follow the DOM keyCode
// numbering so frontends can translate their native keys once.
type Key int

const (
	KeyNone  Key = 0
	KeyLeft  Key = 37
	KeyUp    Key = 38
	KeyRight Key = 39
	KeyDown  Key = 40
	KeyA     Key = 65
	KeyD     Key = 68
	KeyS     Key = 83
	KeyW     Key = 87
	KeyZ     Key = 90
)

// KeyMap maps key codes to actions.
type KeyMap map[Key]Action

// DefaultKeyMap returns the arrow/WASD bindings plus Z for rotate-right.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyLeft:  ActionMoveLeft,
		KeyA:     ActionMoveLeft,
		KeyRight: ActionMoveRight,
		KeyD:     ActionMoveRight,
		KeyDown:  ActionMoveDown,
		KeyS:     ActionMoveDown,
		KeyUp:    ActionRotateLeft,
		KeyW:     ActionRotateLeft,
		KeyZ:     ActionRotateRight,
	}
}

// Lookup returns the action bound to k, or ActionNone.
func (m KeyMap) Lookup(k Key) Action {
	if k == KeyNone {
		return ActionNone
	}
	return m[k]
}
