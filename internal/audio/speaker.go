// Package audio plays the game's spoken-style cues as synthesized tones.
//
// The real app speaks "where is the dog?" and "super!"; here every cue is a
// short phrase of notes so the game stays self-contained.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/whereisit/internal/registry"
	"github.com/vovakirdan/whereisit/internal/stage"
)

const (
	sampleRate  = beep.SampleRate(44100)
	defaultTone = 440.0
)

// Player is the audio collaborator of a game session.
type Player interface {
	stage.Prompter
	PlayCelebration()
}

var (
	_ Player = (*Speaker)(nil)
	_ Player = Silent{}
)

// Speaker plays cues through the system audio device.
//
// All methods are safe to call before Init or after a failed Init; they do
// nothing until the device is open. Playback never blocks the caller.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	prompt      *beep.Ctrl // current intro+target phrase, replaced by the next prompt
	volume      float64
	initialized bool
}

// NewSpeaker creates a speaker with a linear volume in [0, 1].
func NewSpeaker(volume float64) *Speaker {
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Init opens the audio device.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close stops all sounds. The device stays open; beep cannot reopen it.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.prompt = nil
	s.initialized = false
}

// PlayIntroAndTarget plays the intro phrase followed by the target's motif.
// A prompt still playing is cut off.
func (s *Speaker) PlayIntroAndTarget(introID, targetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	ctrl := &beep.Ctrl{Streamer: withVolume(promptStreamer(introID, targetID), s.volume)}
	speaker.Lock()
	if s.prompt != nil {
		s.prompt.Paused = true
		s.prompt.Streamer = nil
	}
	s.mixer.Add(ctrl)
	speaker.Unlock()
	s.prompt = ctrl
}

// PlayCelebration plays the "super" jingle over whatever is playing.
func (s *Speaker) PlayCelebration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Add(withVolume(phrase(sampleRate, superCue), s.volume))
	speaker.Unlock()
}

func promptStreamer(introID, targetID string) beep.Streamer {
	return phrase(sampleRate, promptNotes(introID, targetID))
}

func promptNotes(introID, targetID string) []note {
	intro, ok := intros[introID]
	if !ok {
		intro = defaultIntro
	}
	notes := append([]note(nil), intro...)
	notes = append(notes, note{dur: 120 * time.Millisecond})
	return append(notes, targetNotes(targetTone(targetID))...)
}

func targetTone(id string) float64 {
	icon, err := registry.Lookup(id)
	if err != nil || icon.Tone <= 0 {
		return defaultTone
	}
	return icon.Tone
}

// Silent is a Player that plays nothing.
type Silent struct{}

func (Silent) PlayIntroAndTarget(string, string) {}

func (Silent) PlayCelebration() {}
