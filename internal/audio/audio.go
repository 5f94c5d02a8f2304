// Package audio plays the synthesized match effects through oto.
package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"soccer/internal/audio/synth"
	"soccer/internal/game"
)

// Overlapping effects beyond maxVoices are dropped.
const maxVoices = 8

// Player owns the oto context. A nil *Player is valid and silent, which is
// what the frontends hold when the sound device could not be opened.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	log    *zap.Logger
	wg     sync.WaitGroup
	voices atomic.Int32
	muted  atomic.Bool

	mu     sync.Mutex
	volume float64
}

// New opens the default output device. The device finishes warming up in
// the background; effects requested before then are skipped.
func New(volume float64, mute bool, log *zap.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(synth.SampleRate, synth.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{ctx: ctx, ready: ready, log: log.Named("audio"), volume: volume}
	p.muted.Store(mute)
	return p, nil
}

// Play renders k and plays it on its own goroutine.
func (p *Player) Play(k synth.Kind, intensity float64) {
	if p == nil || p.muted.Load() {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	if p.voices.Add(1) > maxVoices {
		p.voices.Add(-1)
		return
	}
	samples := synth.Generate(k, intensity)
	if len(samples) == 0 {
		p.voices.Add(-1)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.voices.Add(-1)
		player := p.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(p.Volume())
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.log.Debug("closing voice", zap.Stringer("sound", k), zap.Error(err))
		}
	}()
}

// Attach plays a cue for every audible event on m.
func (p *Player) Attach(m *game.Match) {
	if p == nil {
		return
	}
	m.Events.SubscribeAll(func(e game.Event) {
		if k, intensity, ok := synth.Cue(e, m.Rules); ok {
			p.Play(k, intensity)
		}
	})
}

// ToggleMute flips the mute flag and returns the new value.
func (p *Player) ToggleMute() bool {
	if p == nil {
		return true
	}
	muted := !p.muted.Load()
	p.muted.Store(muted)
	p.log.Info("mute", zap.Bool("muted", muted))
	return muted
}

// SetVolume applies to effects started after the call.
func (p *Player) SetVolume(v float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.volume = min(max(v, 0), 1)
	p.mu.Unlock()
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Close waits for playing effects to finish.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.muted.Store(true)
	p.wg.Wait()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}
