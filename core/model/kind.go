package model

import "fmt"

// Kind describes what a node does. It is one of Default, Spawner or
// SampleTrigger. Kinds are plain values: stamping one onto several nodes
// gives each node its own copy.
type Kind interface {
	isKind()
	fmt.Stringer
}

// Default nodes only relay signals.
type Default struct{}

// Spawner injects a signal onto each outgoing edge every BarDelay bars.
// NextSpawn is the simulation time of the next injection.
type Spawner struct {
	BarDelay  float64
	NextSpawn float64
}

// SampleTrigger requests playback of Sample whenever a signal arrives.
type SampleTrigger struct {
	Sample int
}

func (Default) isKind()       {}
func (Spawner) isKind()       {}
func (SampleTrigger) isKind() {}

func (Default) String() string { return "default" }
func (s Spawner) String() string {
	return fmt.Sprintf("spawner(every %.2g bars, next %.3f)", s.BarDelay, s.NextSpawn)
}
func (s SampleTrigger) String() string { return fmt.Sprintf("sample(%d)", s.Sample) }

// Period returns the spawn interval in seconds for the given bar duration.
func (s Spawner) Period(barDuration float64) float64 { return s.BarDelay * barDuration }

// Progress returns how much of the current period is still to run, in
// [0, 1] while the spawner is on schedule.
func (s Spawner) Progress(now, barDuration float64) float64 {
	p := s.Period(barDuration)
	if p <= 0 {
		return 0
	}
	return (s.NextSpawn - now) / p
}
