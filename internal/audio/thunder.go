// Package audio plays a thunder crackle whenever a lightning bolt spawns.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/san-kum/digirain/internal/rain"
)

const (
	SampleRate = beep.SampleRate(44100)
	BufferSize = 100 * time.Millisecond

	// MaxVoices caps overlapping crackles; later spawns are dropped.
	MaxVoices = 4
)

// Thunder owns the speaker and mixes one crackle per spawned bolt.
type Thunder struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	seed   uint64
	log    zerolog.Logger

	Active bool
}

func NewThunder(volume float64, log zerolog.Logger) *Thunder {
	return &Thunder{
		mixer:  &beep.Mixer{},
		volume: volume,
		seed:   uint64(time.Now().UnixNano()),
		log:    log,
	}
}

func (t *Thunder) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Active {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(BufferSize)); err != nil {
		t.log.Warn().Err(err).Msg("audio unavailable")
		return err
	}
	speaker.Play(t.mixer)
	t.Active = true
	t.log.Debug().Int("rate", int(SampleRate)).Msg("audio started")
	return nil
}

func (t *Thunder) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Active {
		return
	}
	speaker.Clear()
	speaker.Close()
	t.Active = false
}

// Hook is a rain.Driver spawn hook. Longer-lived bolts rumble longer.
func (t *Thunder) Hook(b *rain.Bolt) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Active {
		return
	}
	t.seed++
	d := crackleLength(b.LifeTime())
	s := beep.Take(SampleRate.N(d), NewCrackle(SampleRate, t.seed, t.volume))

	speaker.Lock()
	defer speaker.Unlock()
	if t.mixer.Len() >= MaxVoices {
		return
	}
	t.mixer.Add(s)
}

// crackleLength maps a bolt lifetime in frames to a sound length, assuming
// 60 frames per second, clamped to [0.4s, 1.5s].
func crackleLength(frames float64) time.Duration {
	d := time.Duration(frames / 60 * float64(time.Second))
	return min(max(d, 400*time.Millisecond), 1500*time.Millisecond)
}

// Crackle is an endless decaying thunder sound: low-passed noise over a low
// rumble. Wrap it in beep.Take to bound it.
type Crackle struct {
	sr     beep.SampleRate
	pos    int
	noise  uint64
	filter float64
	volume float64
}

func NewCrackle(sr beep.SampleRate, seed uint64, volume float64) *Crackle {
	return &Crackle{sr: sr, noise: seed | 1, volume: volume}
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func (c *Crackle) next() float64 {
	c.noise = c.noise*6364136223846793005 + 1442695040888963407
	return float64(c.noise>>11)/float64(1<<53)*2 - 1
}

func (c *Crackle) Stream(samples [][2]float64) (n int, ok bool) {
	dt := 1 / float64(c.sr)
	for i := range samples {
		t := float64(c.pos) * dt
		env := math.Exp(-t * 4)
		c.filter = lpf(c.next(), 900, dt, c.filter)
		rumble := 0.4 * math.Sin(2*math.Pi*80*t)
		v := c.volume * env * (0.6*c.filter*3 + rumble)
		v = max(-1, min(1, v))
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *Crackle) Err() error { return nil }
