package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
)

var (
	cursorPosition            = ebiten.CursorPosition
	isMouseButtonPressed      = ebiten.IsMouseButtonPressed
	isMouseButtonJustPressed  = inpututil.IsMouseButtonJustPressed
	isMouseButtonJustReleased = inpututil.IsMouseButtonJustReleased
	isKeyPressed              = ebiten.IsKeyPressed
	isKeyJustPressed          = inpututil.IsKeyJustPressed
)

// InputFuncs replaces the polling functions in tests.
type InputFuncs struct {
	Cursor       func() (int, int)
	Mouse        func(ebiten.MouseButton) bool
	MouseJust    func(ebiten.MouseButton) bool
	MouseRelease func(ebiten.MouseButton) bool
	Key          func(ebiten.Key) bool
	KeyJust      func(ebiten.Key) bool
}

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(f InputFuncs) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldMouseJust := isMouseButtonJustPressed
	oldMouseRelease := isMouseButtonJustReleased
	oldKey := isKeyPressed
	oldKeyJust := isKeyJustPressed
	cursorPosition = f.Cursor
	isMouseButtonPressed = f.Mouse
	isMouseButtonJustPressed = f.MouseJust
	isMouseButtonJustReleased = f.MouseRelease
	isKeyPressed = f.Key
	isKeyJustPressed = f.KeyJust
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isMouseButtonJustPressed = oldMouseJust
		isMouseButtonJustReleased = oldMouseRelease
		isKeyPressed = oldKey
		isKeyJustPressed = oldKeyJust
	}
}

var actionKeys = map[ebiten.Key]editor.Action{
	ebiten.KeyX:      editor.ActionToggleDelete,
	ebiten.KeyE:      editor.ActionToggleAddEdge,
	ebiten.KeyEscape: editor.ActionEscape,
	ebiten.KeySpace:  editor.ActionPause,
}

var sampleKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
}

// readInput polls this frame's input. camera turns the cursor into world
// space; barDelay is stamped onto spawners picked with Q.
func readInput(camera geom.Point, barDelay float64) editor.Input {
	x, y := cursorPosition()
	in := editor.Input{
		Pointer:         geom.ToWorld(geom.Pt(float64(x), float64(y)), camera),
		PointerPressed:  isMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PointerHeld:     isMouseButtonPressed(ebiten.MouseButtonLeft),
		PointerReleased: isMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightPressed:    isMouseButtonJustPressed(ebiten.MouseButtonRight),
	}
	for k, a := range actionKeys {
		if isKeyJustPressed(k) {
			in.Actions |= a
		}
	}

	switch {
	case isKeyJustPressed(ebiten.KeyQ):
		in.Assign = model.Spawner{BarDelay: barDelay}
	case isKeyJustPressed(ebiten.KeyDigit0):
		in.Assign = model.Default{}
	default:
		for i, k := range sampleKeys {
			if isKeyJustPressed(k) {
				in.Assign = model.SampleTrigger{Sample: i}
				break
			}
		}
	}

	if isKeyPressed(ebiten.KeyA) {
		in.Pan.X--
	}
	if isKeyPressed(ebiten.KeyD) {
		in.Pan.X++
	}
	if isKeyPressed(ebiten.KeyW) {
		in.Pan.Y--
	}
	if isKeyPressed(ebiten.KeyS) {
		in.Pan.Y++
	}
	return in
}
