package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"piratestage/game"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	shotDuration   = 250 * time.Millisecond
	shotAttack     = 5 * time.Millisecond
	shotRelease    = 200 * time.Millisecond
	hitDuration    = 180 * time.Millisecond
	hitAttack      = 2 * time.Millisecond
	hitRelease     = 120 * time.Millisecond
	bounceDuration = 90 * time.Millisecond
	bounceAttack   = 2 * time.Millisecond
	bounceRelease  = 70 * time.Millisecond
	splashDuration = 400 * time.Millisecond
	splashAttack   = 20 * time.Millisecond
	splashRelease  = 300 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	sweep    float64 // Hz per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 0, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch moves by sweep Hz per second
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := max(o.freq+o.sweep*float64(o.position)/float64(o.rate), 0)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateShotSound is a low boom with a noise crack on top
func CreateShotSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	boom := NewEnvelope(NewSweep(140, -300, shotDuration, WaveSine, rate), shotDuration, shotAttack, shotRelease, rate)
	crack := NewEnvelope(NewOscillator(0, shotDuration/3, WaveNoise, rate), shotDuration/3, shotAttack, shotDuration/4, rate)

	mixed := beep.Mix(newVolume(boom, 0.8), newVolume(crack, 0.3))
	return newVolume(mixed, cfg.EffectVolumes[game.SoundShot]*cfg.MasterVolume)
}

// CreateHitSound is a harsh falling buzz
func CreateHitSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewSweep(220, -600, hitDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, hitDuration, hitAttack, hitRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[game.SoundHit]*cfg.MasterVolume)
}

// CreateBounceSound is a short wooden knock
func CreateBounceSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(90, bounceDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, bounceDuration, bounceAttack, bounceRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[game.SoundBounce]*cfg.MasterVolume)
}

// CreateSplashSound is filtered-sounding noise with a slow tail
func CreateSplashSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewEnvelope(NewOscillator(0, splashDuration, WaveNoise, rate), splashDuration, splashAttack, splashRelease, rate)
	plop := NewEnvelope(NewSweep(400, -800, splashDuration/4, WaveSine, rate), splashDuration/4, splashAttack/4, splashDuration/8, rate)

	mixed := beep.Mix(newVolume(noise, 0.4), newVolume(plop, 0.6))
	return newVolume(mixed, cfg.EffectVolumes[game.SoundSplash]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for a simulation sound event
func GetSoundEffect(s game.Sound, cfg *AudioConfig) beep.Streamer {
	switch s {
	case game.SoundShot:
		return CreateShotSound(cfg)
	case game.SoundHit:
		return CreateHitSound(cfg)
	case game.SoundBounce:
		return CreateBounceSound(cfg)
	case game.SoundSplash:
		return CreateSplashSound(cfg)
	default:
		return nil
	}
}
