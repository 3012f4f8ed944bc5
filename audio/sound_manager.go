package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/prize-wheel/constants"
)

// Sink receives a ready-to-play streamer
type Sink func(beep.Streamer)

// SoundManager manages all wheel audio
// Every Play method is a no-op until an output is attached, so the wheel runs silently without a device
type SoundManager struct {
	mu          sync.Mutex
	settings    *Settings
	sink        Sink
	ownsSpeaker bool
	initialized bool

	spin     *beep.Ctrl
	lastTick time.Time

	active atomic.Int32
	played [soundTypeCount]atomic.Uint64
}

// NewSoundManager creates a new sound manager
func NewSoundManager(settings *Settings) *SoundManager {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &SoundManager{settings: settings}
}

// Initialize opens the speaker
// Disabled audio is not an error, it simply leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.settings.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.settings.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	sm.sink = func(s beep.Streamer) { speaker.Play(s) }
	sm.ownsSpeaker = true
	sm.initialized = true
	return nil
}

// SetSink attaches an alternative output instead of the speaker
func (sm *SoundManager) SetSink(sink Sink) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.sink = sink
	sm.initialized = sink != nil && sm.settings.Enabled
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.ownsSpeaker {
		speaker.Clear()
		speaker.Close()
	}
	sm.spin = nil
	sm.sink = nil
	sm.ownsSpeaker = false
	sm.initialized = false
}

// PlaySpin starts the release whoosh, replacing one still playing
func (sm *SoundManager) PlaySpin() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.pauseSpinLocked()
	sm.spin = &beep.Ctrl{Streamer: CreateSpinSound(sm.settings), Paused: false}
	sm.playLocked(SoundSpin, sm.spin)
}

// StopSpin silences the whoosh when a spin is cancelled
func (sm *SoundManager) StopSpin() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.pauseSpinLocked()
}

// PlayTick plays a segment click unless one played within MinSoundGap
// Returns true when the click was queued
func (sm *SoundManager) PlayTick(now time.Time) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	if !sm.lastTick.IsZero() && now.Sub(sm.lastTick) < sm.settings.MinSoundGap {
		return false
	}

	sm.lastTick = now
	sm.playLocked(SoundTick, CreateTickSound(sm.settings))
	return true
}

// PlayWin plays the result chime
func (sm *SoundManager) PlayWin() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.pauseSpinLocked()
	sm.playLocked(SoundWin, CreateWinSound(sm.settings))
}

// Played returns how many sounds of a type were queued
func (sm *SoundManager) Played(st SoundType) uint64 {
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.played[st].Load()
}

// Active returns the number of queued sounds that have not finished
func (sm *SoundManager) Active() int {
	return int(sm.active.Load())
}

// playLocked wraps the streamer with a completion callback and hands it to the sink
// The callback runs on the output goroutine, so it only touches atomics
func (sm *SoundManager) playLocked(st SoundType, s beep.Streamer) {
	sm.played[st].Add(1)
	sm.active.Add(1)
	sm.sink(beep.Seq(s, beep.Callback(func() {
		sm.active.Add(-1)
	})))
}

func (sm *SoundManager) pauseSpinLocked() {
	if sm.spin == nil {
		return
	}
	if sm.ownsSpeaker {
		speaker.Lock()
		sm.spin.Paused = true
		speaker.Unlock()
	} else {
		sm.spin.Paused = true
	}
	sm.spin = nil
}
