// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// baseFreq is the pitch of a rank-1 merge (C4).
const baseFreq = 261.63

type note struct {
	freq float64
	dur  time.Duration
}

// Player turns bus events into tones on the default output device.
type Player struct {
	sr     beep.SampleRate
	volume float64
}

// New opens the speaker. Without an output device it returns an error and
// the caller should run silent.
func New() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{sr: sampleRate, volume: -1.5}, nil
}

// Handle is a bus Handler.
func (p *Player) Handle(ev game.Event) {
	notes := cue(ev)
	if len(notes) == 0 {
		return
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(p.sr, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(p.sr.N(n.dur), sine))
	}
	if len(parts) == 0 {
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   p.volume,
	})
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	speaker.Close()
}

// Frequency is the merge pitch for rank: a whole tone per rank above C4.
func Frequency(rank game.Rank) float64 {
	if rank < 1 {
		rank = 1
	}
	return baseFreq * math.Pow(2, float64(rank-1)*2/12)
}

func cue(ev game.Event) []note {
	switch ev.Kind {
	case game.EventDrop:
		return []note{{freq: 196, dur: 25 * time.Millisecond}}
	case game.EventMerge:
		return []note{{freq: Frequency(ev.Rank), dur: 70 * time.Millisecond}}
	case game.EventVanish:
		return []note{
			{freq: baseFreq * 2, dur: 60 * time.Millisecond},
			{freq: baseFreq * 2.5, dur: 60 * time.Millisecond},
			{freq: baseFreq * 3, dur: 120 * time.Millisecond},
		}
	case game.EventDeadlineWarning:
		if ev.Warning {
			return []note{{freq: 880, dur: 40 * time.Millisecond}}
		}
	case game.EventGameOver:
		return []note{
			{freq: 392, dur: 150 * time.Millisecond},
			{freq: 330, dur: 150 * time.Millisecond},
			{freq: 262, dur: 300 * time.Millisecond},
		}
	}
	return nil
}
