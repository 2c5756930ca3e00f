// Package sound turns the floor contacts of a drop into an audio track: one
// short click per impact, quieter as the ball slows down.
package sound

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/ja7ad/bouncy/pkg/bounce"
)

// ErrNoImpacts is returned when there is nothing to sonify.
var ErrNoImpacts = errors.New("sound: no impacts")

// Options tune the click sound.
type Options struct {
	SampleRate beep.SampleRate
	Click      time.Duration // length of one click
	Freq       float64       // click tone in Hz
	Tail       time.Duration // silence after the last click
}

func _defaultOptions() Options {
	return Options{
		SampleRate: beep.SampleRate(44100),
		Click:      30 * time.Millisecond,
		Freq:       880,
		Tail:       250 * time.Millisecond,
	}
}

func (o Options) merged() Options {
	base := _defaultOptions()
	if o.SampleRate > 0 {
		base.SampleRate = o.SampleRate
	}
	if o.Click > 0 {
		base.Click = o.Click
	}
	if o.Freq > 0 {
		base.Freq = o.Freq
	}
	if o.Tail > 0 {
		base.Tail = o.Tail
	}
	return base
}

// Track builds a streamer with a click at each impact time. Click loudness is
// the impact speed relative to the first impact. Clicks that would overlap the
// next impact are cut short.
func Track(impacts []bounce.Impact, opts Options) (beep.Streamer, error) {
	if len(impacts) == 0 {
		return nil, ErrNoImpacts
	}
	o := opts.merged()
	sr := o.SampleRate
	click := sr.N(o.Click)
	ref := impacts[0].Speed

	var (
		parts []beep.Streamer
		pos   int // samples emitted so far
	)
	for i, imp := range impacts {
		at := sr.N(time.Duration(imp.Time * float64(time.Second)))
		if at > pos {
			parts = append(parts, beep.Silence(at-pos))
			pos = at
		}

		n := click
		if i+1 < len(impacts) {
			next := sr.N(time.Duration(impacts[i+1].Time * float64(time.Second)))
			n = min(n, next-pos)
		}
		if n <= 0 {
			continue
		}

		tone, err := generators.SineTone(sr, o.Freq)
		if err != nil {
			return nil, fmt.Errorf("sound: tone: %w", err)
		}
		gain := 1.0
		if ref > 0 {
			gain = imp.Speed / ref
		}
		parts = append(parts, &effects.Gain{
			Streamer: beep.Take(n, tone),
			Gain:     gain - 1, // effects.Gain scales by 1+Gain
		})
		pos += n
	}
	parts = append(parts, beep.Silence(sr.N(o.Tail)))

	return beep.Seq(parts...), nil
}

// Length returns the number of samples Track produces for impacts.
func Length(impacts []bounce.Impact, opts Options) int {
	if len(impacts) == 0 {
		return 0
	}
	o := opts.merged()
	sr := o.SampleRate
	last := sr.N(time.Duration(impacts[len(impacts)-1].Time * float64(time.Second)))
	return last + sr.N(o.Click) + sr.N(o.Tail)
}

// WriteWAV encodes the impact track as 16-bit stereo PCM.
func WriteWAV(w io.WriteSeeker, impacts []bounce.Impact, opts Options) error {
	s, err := Track(impacts, opts)
	if err != nil {
		return err
	}
	format := beep.Format{
		SampleRate:  opts.merged().SampleRate,
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("sound: encode wav: %w", err)
	}
	return nil
}
