// Package fx implements the particle bursts shown when a signal reaches a
// node.
package fx

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ingyamilmolinar/nodeseq/core/beat"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/sim"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

// noiseScale maps world units onto the noise field.
const noiseScale = 0.03

type Particle struct {
	Pos     geom.Point
	Vel     geom.Point
	EndTime float64
}

func (p Particle) Position() geom.Point { return p.Pos }

// System owns the live particles. Time comes from the shared clock, so
// particles freeze while the simulation is paused.
type System struct {
	clock      *beat.Clock
	particles  []Particle
	rng        *rand.Rand
	noise      opensimplex.Noise
	turbulence float64
	logger     *game_log.Logger
}

// New returns a particle system. turbulence is the strength of the noise
// field bending particle paths, in units/s²; zero gives straight lines.
func New(clock *beat.Clock, turbulence float64, seed int64, logger *game_log.Logger) *System {
	return &System{
		clock:      clock,
		rng:        rand.New(rand.NewSource(seed)),
		noise:      opensimplex.New(seed),
		turbulence: turbulence,
		logger:     logger,
	}
}

var _ sim.Effects = (*System)(nil)

// SpawnBurst emits b.Count particles from pos, each with a uniformly random
// heading and a speed in [b.SpeedMin, b.SpeedMax].
func (s *System) SpawnBurst(pos geom.Point, b sim.Burst) {
	end := s.clock.Time + b.Lifetime
	for i := 0; i < b.Count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := b.SpeedMin + s.rng.Float64()*(b.SpeedMax-b.SpeedMin)
		s.particles = append(s.particles, Particle{
			Pos:     pos,
			Vel:     r2.Scale(speed, geom.FromAngle(angle)),
			EndTime: end,
		})
	}
}

// Update moves particles by the clock's last delta and drops expired ones.
// It returns the number removed.
func (s *System) Update() int {
	dt := s.clock.Dt
	now := s.clock.Time
	removed := 0
	for i := len(s.particles) - 1; i >= 0; i-- {
		p := &s.particles[i]
		if p.EndTime <= now {
			last := len(s.particles) - 1
			s.particles[i] = s.particles[last]
			s.particles = s.particles[:last]
			removed++
			continue
		}
		if dt == 0 {
			continue
		}
		if s.turbulence > 0 {
			a := s.noise.Eval3(p.Pos.X*noiseScale, p.Pos.Y*noiseScale, now) * 2 * math.Pi
			p.Vel = r2.Add(p.Vel, r2.Scale(s.turbulence*dt, geom.FromAngle(a)))
		}
		p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
	}
	return removed
}

// Particles returns the live particles. The slice is owned by the system.
func (s *System) Particles() []Particle { return s.particles }

func (s *System) Len() int { return len(s.particles) }

func (s *System) Clear() { s.particles = s.particles[:0] }
