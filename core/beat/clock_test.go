package beat

import "testing"

func TestClockAdvances(t *testing.T) {
	c := NewClock(10, 150)
	c.Advance(0.5)
	c.Advance(0.25)
	if c.Time != 0.75 {
		t.Fatalf("Time = %v, want 0.75", c.Time)
	}
	if c.Dt != 0.25 {
		t.Fatalf("Dt = %v, want 0.25", c.Dt)
	}
}

func TestClockPauseFreezesTime(t *testing.T) {
	c := NewClock(10, 150)
	c.Advance(1)
	c.TogglePause()
	c.Advance(5)
	if c.Time != 1 || c.Dt != 0 {
		t.Fatalf("paused clock moved: time=%v dt=%v", c.Time, c.Dt)
	}
	c.TogglePause()
	c.Advance(1)
	if c.Time != 2 {
		t.Fatalf("Time = %v after resume, want 2", c.Time)
	}
}

func TestClockIgnoresNegativeDelta(t *testing.T) {
	c := NewClock(1, 1)
	c.Advance(-3)
	if c.Time != 0 || c.Dt != 0 {
		t.Fatalf("negative delta applied: time=%v dt=%v", c.Time, c.Dt)
	}
}

func TestSignalSpeed(t *testing.T) {
	if got := NewClock(10, 150).SignalSpeed(); got != 15 {
		t.Fatalf("SignalSpeed = %v, want 15", got)
	}
	if got := NewClock(0, 150).SignalSpeed(); got != 0 {
		t.Fatalf("SignalSpeed with zero bar = %v", got)
	}
}

func TestSetBPM(t *testing.T) {
	c := NewClock(10, 150)
	c.SetBPM(120)
	if c.BarDuration != 2 {
		t.Fatalf("BarDuration = %v, want 2", c.BarDuration)
	}
	c.SetBPM(0)
	if c.BarDuration != 2 {
		t.Fatalf("SetBPM(0) changed bar duration to %v", c.BarDuration)
	}
}
