package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the default speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between consecutive segment ticks
	MinSoundGap = 40 * time.Millisecond

	// DefaultMasterVolume applies on top of per-effect volumes
	DefaultMasterVolume = 0.5
)

// Default per-effect volumes
const (
	DefaultSpinVolume = 0.6
	DefaultTickVolume = 0.4
	DefaultWinVolume  = 1.0
)

// Spin Whoosh Timing
const (
	WhooshSoundDuration = 300 * time.Millisecond
	WhooshSoundAttack   = 150 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
	WhooshSweepFrom     = 420.0
	WhooshSweepTo       = 110.0
)

// Segment Tick Timing
const (
	TickSoundDuration = 15 * time.Millisecond
	TickSoundAttack   = 1 * time.Millisecond
	TickSoundRelease  = 10 * time.Millisecond
	TickSoundFreq     = 1200.0
)

// Bell Sound Timing
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
)

// Coin Sound Timing
const (
	CoinSoundNote1Duration = 80 * time.Millisecond
	CoinSoundNote2Duration = 280 * time.Millisecond
	CoinSoundAttack        = 5 * time.Millisecond
	CoinSoundNote1Release  = 40 * time.Millisecond
	CoinSoundNote2Release  = 200 * time.Millisecond
)
