package ui

import (
	"image/color"
	"io"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/engine"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(io.Discard, game_log.LevelError)
}

// frameInput describes what is held or just pressed during one frame.
type frameInput struct {
	x, y      int
	held      []ebiten.Key
	pressed   []ebiten.Key
	leftDown  bool
	leftJust  bool
	leftUp    bool
	rightJust bool
}

func contains(keys []ebiten.Key, k ebiten.Key) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}

func withInput(f frameInput) func() {
	return SetInputForTest(InputFuncs{
		Cursor: func() (int, int) { return f.x, f.y },
		Mouse:  func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && f.leftDown },
		MouseJust: func(b ebiten.MouseButton) bool {
			return (b == ebiten.MouseButtonLeft && f.leftJust) || (b == ebiten.MouseButtonRight && f.rightJust)
		},
		MouseRelease: func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && f.leftUp },
		Key:          func(k ebiten.Key) bool { return contains(f.held, k) },
		KeyJust:      func(k ebiten.Key) bool { return contains(f.pressed, k) },
	})
}

func TestReadInputMapsKeys(t *testing.T) {
	restore := withInput(frameInput{
		x: 100, y: 50,
		held:     []ebiten.Key{ebiten.KeyA, ebiten.KeyW},
		pressed:  []ebiten.Key{ebiten.KeyX, ebiten.KeyDigit3, ebiten.KeySpace},
		leftDown: true, leftJust: true,
	})
	defer restore()

	in := readInput(geom.Pt(10, -5), 1)
	want := editor.Input{
		Pointer:        geom.Pt(110, 45),
		PointerPressed: true,
		PointerHeld:    true,
		Actions:        editor.ActionToggleDelete | editor.ActionPause,
		Pan:            geom.Pt(-1, -1),
		Assign:         model.SampleTrigger{Sample: 2},
	}
	if !reflect.DeepEqual(in, want) {
		t.Fatalf("got %+v, want %+v", in, want)
	}
}

func TestReadInputAssignKeys(t *testing.T) {
	cases := []struct {
		key  ebiten.Key
		want model.Kind
	}{
		{ebiten.KeyQ, model.Spawner{BarDelay: 2}},
		{ebiten.KeyDigit0, model.Default{}},
		{ebiten.KeyDigit1, model.SampleTrigger{Sample: 0}},
		{ebiten.KeyDigit5, model.SampleTrigger{Sample: 4}},
	}
	for _, tc := range cases {
		restore := withInput(frameInput{pressed: []ebiten.Key{tc.key}})
		in := readInput(geom.Point{}, 2)
		restore()
		if !reflect.DeepEqual(in.Assign, tc.want) {
			t.Fatalf("key %v: got %v, want %v", tc.key, in.Assign, tc.want)
		}
	}
}

func TestReadInputOpposingPanCancels(t *testing.T) {
	restore := withInput(frameInput{held: []ebiten.Key{ebiten.KeyA, ebiten.KeyD, ebiten.KeyS}})
	defer restore()
	if got := readInput(geom.Point{}, 1).Pan; got != geom.Pt(0, 1) {
		t.Fatalf("pan = %v", got)
	}
}

func TestUpdateBuildsEdgeChain(t *testing.T) {
	state := engine.New(engine.DefaultConfig, nil, testLogger)
	g := New(state, 1, testLogger)

	frames := []frameInput{
		{pressed: []ebiten.Key{ebiten.KeyE}},
		{x: 100, y: 100, leftDown: true, leftJust: true},
		{x: 100, y: 100, leftUp: true},
		{x: 300, y: 120, leftDown: true, leftJust: true},
		{x: 300, y: 120, leftUp: true},
	}
	for _, f := range frames {
		restore := withInput(f)
		if err := g.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
		restore()
	}

	if _, ok := state.Editor.Mode().(editor.AddEdge); !ok {
		t.Fatalf("mode = %s, want add-edge", state.Editor.Mode().Name())
	}
	if state.Graph.NodeCount() != 2 || state.Graph.EdgeCount() != 1 {
		t.Fatalf("graph has %d nodes, %d edges", state.Graph.NodeCount(), state.Graph.EdgeCount())
	}
	if g.frame != int64(len(frames)) {
		t.Fatalf("frame = %d", g.frame)
	}
}

func TestUpdatePansCamera(t *testing.T) {
	state := engine.New(engine.DefaultConfig, nil, testLogger)
	g := New(state, 1, testLogger)
	restore := withInput(frameInput{held: []ebiten.Key{ebiten.KeyD}})
	defer restore()
	for i := 0; i < TPS; i++ {
		g.Update()
	}
	if d := state.Camera.X - engine.DefaultConfig.CameraSpeed; d > 1e-6 || d < -1e-6 {
		t.Fatalf("camera = %v after one second", state.Camera)
	}
}

type line struct{ a, b geom.Point }

func captureLines() (*[]line, func()) {
	var got []line
	old := drawLine
	drawLine = func(_ *ebiten.Image, a, b geom.Point, _ float64, _ color.Color) {
		got = append(got, line{a, b})
	}
	return &got, func() { drawLine = old }
}

func TestDrawArrowStopsAtNodeRim(t *testing.T) {
	got, restore := captureLines()
	defer restore()

	drawArrow(nil, geom.Pt(0, 0), geom.Pt(100, 0), 10, colEdge)
	if len(*got) != 3 {
		t.Fatalf("expected shaft and two head strokes, got %d", len(*got))
	}
	shaft := (*got)[0]
	if shaft.a != geom.Pt(10, 0) || shaft.b != geom.Pt(90, 0) {
		t.Fatalf("shaft = %+v", shaft)
	}
	for _, l := range (*got)[1:] {
		if l.a != geom.Pt(90, 0) || l.b.X != 90-arrowSize {
			t.Fatalf("head stroke = %+v", l)
		}
	}
}

func TestDrawArrowBetweenTouchingNodes(t *testing.T) {
	got, restore := captureLines()
	defer restore()
	drawArrow(nil, geom.Pt(0, 0), geom.Pt(15, 0), 10, colEdge)
	if len(*got) != 1 {
		t.Fatalf("expected a bare segment, got %d lines", len(*got))
	}
}

func TestDrawArcCoversFraction(t *testing.T) {
	got, restore := captureLines()
	defer restore()

	drawArc(nil, geom.Pt(0, 0), 10, 0, colSpawnerArc)
	if len(*got) != 0 {
		t.Fatalf("empty arc drew %d segments", len(*got))
	}
	drawArc(nil, geom.Pt(0, 0), 10, 0.5, colSpawnerArc)
	if len(*got) != 16 {
		t.Fatalf("half arc drew %d segments", len(*got))
	}
	start, end := (*got)[0].a, (*got)[15].b
	if d := start.Y + 10; d > 1e-9 || d < -1e-9 {
		t.Fatalf("arc should start at the top, got %v", start)
	}
	if d := end.Y - 10; d > 1e-9 || d < -1e-9 {
		t.Fatalf("half arc should end at the bottom, got %v", end)
	}
}

func TestGridLines(t *testing.T) {
	got := gridLines(-30, 120, 50)
	want := []float64{0, 50, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if gridLines(0, 100, 0) != nil {
		t.Fatal("zero step should yield nothing")
	}
}

func TestKindColor(t *testing.T) {
	if kindColor(model.Default{}) != colNodeDefault {
		t.Fatal("default color")
	}
	if kindColor(model.Spawner{}) != colNodeSpawner {
		t.Fatal("spawner color")
	}
	if kindColor(model.SampleTrigger{Sample: 1}) != sampleColors[1] {
		t.Fatal("sample color")
	}
	if kindColor(model.SampleTrigger{Sample: 99}) != colNodeSample {
		t.Fatal("fallback sample color")
	}
}
