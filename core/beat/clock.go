package beat

// BeatsPerBar is used when a tempo is given in BPM.
const BeatsPerBar = 4

// Clock is the simulation clock. Time only moves forward, and not at all
// while paused. Editing keeps working while the clock is paused.
type Clock struct {
	Time   float64 // seconds of simulated time
	Dt     float64 // delta applied by the last Advance
	Paused bool

	BarDuration  float64 // seconds per bar
	PixelsPerBar float64 // world units a signal covers in one bar
}

func NewClock(barDuration, pixelsPerBar float64) *Clock {
	return &Clock{BarDuration: barDuration, PixelsPerBar: pixelsPerBar}
}

// Advance moves time forward by frameDt unless paused. Negative deltas are
// treated as zero.
func (c *Clock) Advance(frameDt float64) {
	if c.Paused || frameDt < 0 {
		c.Dt = 0
		return
	}
	c.Dt = frameDt
	c.Time += frameDt
}

func (c *Clock) TogglePause() { c.Paused = !c.Paused }

// SignalSpeed is the horizontal distance a signal covers per second.
func (c *Clock) SignalSpeed() float64 {
	if c.BarDuration <= 0 {
		return 0
	}
	return c.PixelsPerBar / c.BarDuration
}

// Bars converts a bar count to seconds.
func (c *Clock) Bars(n float64) float64 { return n * c.BarDuration }

// SetBPM derives the bar duration from a tempo. Non-positive tempos are
// ignored.
func (c *Clock) SetBPM(bpm int) {
	if bpm <= 0 {
		return
	}
	c.BarDuration = BarDurationFromBPM(bpm)
}

// BarDurationFromBPM returns the length of one bar in seconds.
func BarDurationFromBPM(bpm int) float64 {
	return float64(BeatsPerBar) * 60 / float64(bpm)
}
