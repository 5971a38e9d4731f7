package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrNotInitialized is returned when sound is requested before Init succeeded.
var ErrNotInitialized = errors.New("audio: player not initialized")

// Sink receives finished streamers. Player is the speaker-backed implementation.
type Sink interface {
	Play(s beep.Streamer) error
	StartMusic(s beep.Streamer) error
	StopMusic()
}

// Player owns the speaker and a mixer that one-shot cues and the music loop are
// added to.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	live   bool
	lock   func()
	unlock func()
}

// NewPlayer creates a player. Nothing is audible until Init.
func NewPlayer() *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		lock:   func() {},
		unlock: func() {},
	}
}

// Init opens the speaker and starts streaming the mixer. Calling it again is a
// no-op.
func (p *Player) Init(rate beep.SampleRate, buffer time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		return nil
	}
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return err
	}
	p.lock, p.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(p.mixer)
	p.live = true
	return nil
}

// Play mixes a one-shot streamer in.
func (p *Player) Play(s beep.Streamer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live {
		return ErrNotInitialized
	}
	p.lock()
	p.mixer.Add(s)
	p.unlock()
	return nil
}

// StartMusic starts the background loop unless one is already playing.
func (p *Player) StartMusic(s beep.Streamer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live {
		return ErrNotInitialized
	}
	p.lock()
	defer p.unlock()
	if p.music != nil && !p.music.Paused {
		return nil
	}
	p.music = &beep.Ctrl{Streamer: s}
	p.mixer.Add(p.music)
	return nil
}

// StopMusic silences the background loop. The mixer drops it on its next pass.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	p.lock()
	p.music.Paused = true
	p.music.Streamer = nil
	p.unlock()
	p.music = nil
}

// MusicPlaying reports whether a background loop is active.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil
}

// Active returns how many streamers the mixer is currently playing.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// Close stops everything and clears the mixer.
func (p *Player) Close() {
	p.StopMusic()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.live {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	speaker.Clear()
	p.live = false
}
