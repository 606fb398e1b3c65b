package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// note is one tone of a cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

const (
	noteAttack  = 10 * time.Millisecond
	noteRelease = 40 * time.Millisecond
	noteGap     = 30 * time.Millisecond
)

// Intro phrases by cue ID. "whereis" is a questioning rise.
var intros = map[string][]note{
	"whereis": {
		{freq: 392.00, dur: 140 * time.Millisecond},
		{freq: 440.00, dur: 140 * time.Millisecond},
		{freq: 523.25, dur: 220 * time.Millisecond},
	},
}

var defaultIntro = []note{{freq: 440, dur: 200 * time.Millisecond}}

// superCue is the celebration jingle: a major arpeggio ending on the octave.
var superCue = []note{
	{freq: 523.25, dur: 110 * time.Millisecond},
	{freq: 659.25, dur: 110 * time.Millisecond},
	{freq: 783.99, dur: 110 * time.Millisecond},
	{freq: 1046.50, dur: 400 * time.Millisecond},
}

// targetNotes renders an object name as a short motif around its tone.
func targetNotes(tone float64) []note {
	return []note{
		{freq: tone, dur: 180 * time.Millisecond},
		{dur: 60 * time.Millisecond},
		{freq: tone * 1.25, dur: 260 * time.Millisecond},
	}
}

// tone is a sine oscillator with a linear attack/release envelope.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

func newTone(rate beep.SampleRate, freq float64, dur time.Duration) *tone {
	return &tone{
		rate:    rate,
		freq:    freq,
		total:   rate.N(dur),
		attack:  rate.N(noteAttack),
		release: rate.N(noteRelease),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		vol := 1.0
		if t.attack > 0 && t.pos < t.attack {
			vol = float64(t.pos) / float64(t.attack)
		}
		if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
			vol = math.Min(vol, float64(remaining)/float64(t.release))
		}

		val := vol * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// phrase joins notes into one finite streamer.
func phrase(rate beep.SampleRate, notes []note) beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*len(notes))
	for _, n := range notes {
		if n.freq <= 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		parts = append(parts, newTone(rate, n.freq, n.dur), beep.Silence(rate.N(noteGap)))
	}
	return beep.Seq(parts...)
}

// phraseLen returns the number of samples phrase produces for notes.
func phraseLen(rate beep.SampleRate, notes []note) int {
	total := 0
	for _, n := range notes {
		total += rate.N(n.dur)
		if n.freq > 0 {
			total += rate.N(noteGap)
		}
	}
	return total
}

// withVolume scales s linearly. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
