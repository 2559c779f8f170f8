package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Backend turns voices into sound. Play must not block for long; it is
// called from the playback goroutine.
type Backend interface {
	Play(v Voice)
	Close() error
}

// mixer mixes multiple voices into a single 16-bit mono PCM stream.
type mixer struct {
	mu     sync.Mutex
	voices []Voice
}

func (m *mixer) Add(v Voice) {
	m.mu.Lock()
	m.voices = append(m.voices, v)
	m.mu.Unlock()
}

func (m *mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for oto.Player. It never runs dry: silence is
// produced when no voice is active.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < samples; i++ {
		var sum float64
		for idx := 0; idx < len(m.voices); idx++ {
			val, done := m.voices[idx].Sample()
			sum += val
			if done {
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	return samples * 2, nil
}

// otoBackend streams the mixer through an oto player.
type otoBackend struct {
	ctx    *oto.Context
	player *oto.Player
	mix    *mixer
}

// NewOtoBackend opens the default output device. oto allows one context
// per process.
func NewOtoBackend(sampleRate int) (Backend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   20 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	m := &mixer{}
	p := ctx.NewPlayer(m)
	p.SetBufferSize(sampleRate / 100 * 2) // 10ms
	p.Play()
	return &otoBackend{ctx: ctx, player: p, mix: m}, nil
}

func (b *otoBackend) Play(v Voice) {
	_ = b.ctx.Resume()
	b.mix.Add(v)
}

func (b *otoBackend) Close() error {
	return b.player.Close()
}

type silentBackend struct{}

func (silentBackend) Play(Voice)   {}
func (silentBackend) Close() error { return nil }
