// Package audio plays drum voices for sample-trigger nodes. Triggers are
// queued on a FIFO channel and rendered by a dedicated goroutine, so the
// simulation never waits on the device.
package audio

import (
	"sync"
	"sync/atomic"

	"github.com/ingyamilmolinar/nodeseq/core/sim"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

type Config struct {
	Enabled    bool
	QueueSize  int
	SampleRate int
	Volume     float64
}

var DefaultConfig = Config{Enabled: true, QueueSize: 64, SampleRate: 44100, Volume: 0.8}

// Service implements sim.Playback.
type Service struct {
	cfg       Config
	kit       []Instrument
	backend   Backend
	queue     chan int
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	dropped   atomic.Int64
	played    atomic.Int64
	logger    *game_log.Logger
}

var _ sim.Playback = (*Service)(nil)

// Open starts a service on the default output device. When audio is
// disabled or the device cannot be opened the service stays silent but
// keeps accepting triggers.
func Open(cfg Config, logger *game_log.Logger) *Service {
	var backend Backend = silentBackend{}
	if cfg.Enabled {
		b, err := NewOtoBackend(cfg.SampleRate)
		if err != nil {
			logger.Warnf("[AUDIO] %v; continuing without sound", err)
		} else {
			backend = b
		}
	}
	return NewService(cfg, DefaultKit, backend, logger)
}

// NewService starts the playback goroutine over backend. Sample indices
// address kit.
func NewService(cfg Config, kit []Instrument, backend Backend, logger *game_log.Logger) *Service {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig.QueueSize
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig.SampleRate
	}
	s := &Service{
		cfg:     cfg,
		kit:     kit,
		backend: backend,
		queue:   make(chan int, cfg.QueueSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Trigger queues sample for playback. It never blocks: when the queue is
// full the trigger is dropped.
func (s *Service) Trigger(sample int) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.queue <- sample:
	default:
		s.dropped.Add(1)
		s.logger.Warnf("[AUDIO] Queue full, dropping sample %d", sample)
	}
}

func (s *Service) run() {
	defer s.wg.Done()
	for {
		select {
		case n := <-s.queue:
			s.play(n)
		case <-s.done:
			return
		}
	}
}

func (s *Service) play(sample int) {
	if sample < 0 || sample >= len(s.kit) {
		s.logger.Warnf("[AUDIO] No instrument for sample %d", sample)
		return
	}
	inst := s.kit[sample]
	var v Voice = inst.NewVoice(s.cfg.SampleRate)
	if s.cfg.Volume > 0 && s.cfg.Volume != 1 {
		v = &scaledVoice{v: v, gain: s.cfg.Volume}
	}
	s.backend.Play(v)
	s.played.Add(1)
	s.logger.Debugf("[AUDIO] Playing %s", inst.Name())
}

// Dropped counts triggers lost to a full queue.
func (s *Service) Dropped() int64 { return s.dropped.Load() }

// Played counts voices handed to the backend.
func (s *Service) Played() int64 { return s.played.Load() }

// Instruments lists the kit names in sample order.
func (s *Service) Instruments() []string {
	names := make([]string, len(s.kit))
	for i, inst := range s.kit {
		names[i] = inst.Name()
	}
	return names
}

// Close stops the playback goroutine and releases the device. Queued
// triggers that have not started are discarded. Close is idempotent.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		err = s.backend.Close()
	})
	return err
}
