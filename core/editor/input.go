package editor

import (
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
)

// Action is a set of discrete key actions pressed during one tick.
type Action uint16

const (
	ActionToggleDelete Action = 1 << iota
	ActionToggleAddEdge
	ActionEscape
	ActionPause
)

func (a Action) Has(b Action) bool { return a&b != 0 }

// Input is everything the core reads from the input source in one tick.
// Pointer is already in world space.
type Input struct {
	Pointer         geom.Point
	PointerPressed  bool // went down this tick
	PointerHeld     bool
	PointerReleased bool // went up this tick
	RightPressed    bool

	Actions Action
	// Pan is the held camera direction; each axis is -1, 0 or 1.
	Pan geom.Point
	// Assign, when set, is a kind picked from a palette this tick.
	Assign model.Kind
}

func (in Input) Pressed(a Action) bool { return in.Actions.Has(a) }
