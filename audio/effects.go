package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/prize-wheel/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Voice describes one synthesized note: a wave gliding between two pitches under an attack/release envelope
type Voice struct {
	Wave    WaveType
	From    float64 // Hz at the first sample
	To      float64 // Hz at the last sample, zero holds From
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
}

// Streamer renders the voice at the given sample rate
func (v Voice) Streamer(rate beep.SampleRate) beep.Streamer {
	to := v.To
	if to == 0 {
		to = v.From
	}
	return &voice{
		wave:    v.Wave,
		from:    v.From,
		to:      to,
		total:   rate.N(v.Length),
		attack:  rate.N(v.Attack),
		release: rate.N(v.Release),
		rate:    float64(rate),
	}
}

type voice struct {
	wave     WaveType
	from, to float64
	total    int
	attack   int
	release  int
	rate     float64

	pos   int
	phase float64
}

func (s *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		val := s.sample() * s.gain()
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq() / s.rate
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *voice) Err() error { return nil }

func (s *voice) sample() float64 {
	switch s.wave {
	case WaveSquare:
		if s.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*s.phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * s.phase)
	}
}

// freq interpolates the glide linearly over the voice length
func (s *voice) freq() float64 {
	if s.total <= 1 {
		return s.from
	}
	t := float64(s.pos) / float64(s.total-1)
	return s.from + (s.to-s.from)*t
}

func (s *voice) gain() float64 {
	g := 1.0
	if s.attack > 0 && s.pos < s.attack {
		g = float64(s.pos) / float64(s.attack)
	}
	if left := s.total - s.pos; s.release > 0 && left < s.release {
		g = math.Min(g, float64(left)/float64(s.release))
	}
	return g
}

// newVolume wraps s with a linear gain; zero or negative gain is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateSpinSound generates the whoosh played when the wheel is released: noise over a falling saw sweep
func CreateSpinSound(cfg *Settings) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	air := Voice{
		Wave:    WaveNoise,
		Length:  constants.WhooshSoundDuration,
		Attack:  constants.WhooshSoundAttack,
		Release: constants.WhooshSoundRelease,
	}
	sweep := Voice{
		Wave:    WaveSaw,
		From:    constants.WhooshSweepFrom,
		To:      constants.WhooshSweepTo,
		Length:  constants.WhooshSoundDuration,
		Attack:  constants.WhooshSoundAttack,
		Release: constants.WhooshSoundRelease,
	}
	whoosh := beep.Mix(
		newVolume(air.Streamer(rate), 0.6),
		newVolume(sweep.Streamer(rate), 0.25),
	)
	return newVolume(whoosh, cfg.EffectVolumes[SoundSpin]*cfg.MasterVolume)
}

// CreateTickSound generates the short click of the pointer passing a segment border
func CreateTickSound(cfg *Settings) beep.Streamer {
	click := Voice{
		Wave:    WaveSquare,
		From:    constants.TickSoundFreq,
		Length:  constants.TickSoundDuration,
		Attack:  constants.TickSoundAttack,
		Release: constants.TickSoundRelease,
	}
	return newVolume(click.Streamer(beep.SampleRate(cfg.SampleRate)), cfg.EffectVolumes[SoundTick]*cfg.MasterVolume)
}

// CreateWinSound generates a bell ding followed by a two-note coin chime
func CreateWinSound(cfg *Settings) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// A5 with an octave overtone that dies out first
	fundamental := Voice{Wave: WaveSine, From: 880, Length: constants.BellSoundDuration,
		Attack: constants.BellSoundAttack, Release: constants.BellSoundFundamentalRelease}
	overtone := Voice{Wave: WaveSine, From: 1760, Length: constants.BellSoundDuration,
		Attack: constants.BellSoundAttack, Release: constants.BellSoundOvertoneRelease}
	bell := beep.Mix(
		newVolume(fundamental.Streamer(rate), 0.7),
		newVolume(overtone.Streamer(rate), 0.3),
	)

	// B5 then E6
	low := Voice{Wave: WaveSquare, From: 987.77, Length: constants.CoinSoundNote1Duration,
		Attack: constants.CoinSoundAttack, Release: constants.CoinSoundNote1Release}
	high := Voice{Wave: WaveSquare, From: 1318.51, Length: constants.CoinSoundNote2Duration,
		Attack: constants.CoinSoundAttack, Release: constants.CoinSoundNote2Release}
	coin := newVolume(beep.Seq(low.Streamer(rate), high.Streamer(rate)), 0.5)

	return newVolume(beep.Seq(bell, coin), cfg.EffectVolumes[SoundWin]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for the given type, nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *Settings) beep.Streamer {
	switch soundType {
	case SoundSpin:
		return CreateSpinSound(cfg)
	case SoundTick:
		return CreateTickSound(cfg)
	case SoundWin:
		return CreateWinSound(cfg)
	default:
		return nil
	}
}
