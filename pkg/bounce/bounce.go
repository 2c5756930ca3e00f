package bounce

import (
	"math"

	"github.com/ja7ad/bouncy/pkg/util"
)

// Model evaluates drops under a fixed configuration. It holds no mutable
// state, so one Model may be shared between goroutines.
type Model struct {
	cfg *Config
}

// New creates a model with the given config.
// Fields > 0 in cfg override defaults; anything else is treated as unset.
// Samples must be at least 2 to override, since a segment needs both ends.
func New(cfg *Config) *Model {
	base := _defaultConfig()

	// No user cfg: use defaults as-is.
	if cfg == nil {
		return &Model{cfg: base}
	}

	merged := *base

	if cfg.Gravity > 0 && finite(cfg.Gravity) {
		merged.Gravity = cfg.Gravity
	}
	if cfg.Samples >= 2 {
		merged.Samples = cfg.Samples
	}

	return &Model{cfg: &merged}
}

// Config returns a copy of the effective configuration.
func (m *Model) Config() Config { return *m.cfg }

// Gravity returns the effective gravitational acceleration.
func (m *Model) Gravity() float64 { return m.cfg.Gravity }

// TimeForBounce returns the time to fall from rest at height h to the floor,
// which is also the time to rise from the floor to an apex at h:
//
//	s = ½·g·t²  =>  t = √(2h/g)
func (m *Model) TimeForBounce(h float64) float64 {
	return math.Sqrt(2 * h / m.cfg.Gravity)
}

// Bounces counts the apexes strictly above p.HeightMin and the time taken to
// reach the floor after the last of them.
//
// The counter starts at -1 because the first loop pass is the initial drop.
// The last pass adds the rise to an apex that no longer clears HeightMin, so
// that rise is taken back off the total. If p.Height <= p.HeightMin the loop
// never runs and the raw result is (-1, -√(2h/g)); Simulate rejects such input.
func (m *Model) Bounces(p Params) (count int, total float64) {
	count = -1
	h := p.Height

	for h > p.HeightMin {
		total += m.TimeForBounce(h)
		count++
		h *= p.Eta
		total += m.TimeForBounce(h)
	}

	total -= m.TimeForBounce(h)
	return count, total
}

// Simulate validates p and runs Bounces.
func (m *Model) Simulate(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	n, t := m.Bounces(p)
	return Result{
		Params:    p,
		Gravity:   m.cfg.Gravity,
		Bounces:   n,
		TotalTime: t,
	}, nil
}

// Segments replays the Bounces loop as half-parabolas in chronological order:
// a fall and a rise per pass, then the final fall from the first apex that
// does not clear HeightMin.
func (m *Model) Segments(p Params) []Segment {
	var (
		segs []Segment
		t    float64
		h    = p.Height
	)

	for h > p.HeightMin {
		fall := m.TimeForBounce(h)
		segs = append(segs, Segment{Kind: Fall, Start: t, End: t + fall, Apex: h})
		t += fall

		h *= p.Eta
		rise := m.TimeForBounce(h)
		segs = append(segs, Segment{Kind: Rise, Start: t, End: t + rise, Apex: h})
		t += rise
	}

	fall := m.TimeForBounce(h)
	segs = append(segs, Segment{Kind: Fall, Start: t, End: t + fall, Apex: h})

	return segs
}

// Sample returns the configured number of evenly spaced points along s.
func (m *Model) Sample(s Segment) []Point {
	xs := util.Linspace(s.Start, s.End, m.cfg.Samples)
	pts := make([]Point, len(xs))

	// vertex of the parabola: the apex time
	vertex := s.End
	if s.Kind == Fall {
		vertex = s.End - m.TimeForBounce(s.Apex)
	}

	half := m.cfg.Gravity / 2
	for i, x := range xs {
		d := x - vertex
		pts[i] = Point{Time: x, Height: s.Apex - half*d*d}
	}
	return pts
}

// Trajectory samples every segment of the drop and concatenates the samples.
func (m *Model) Trajectory(p Params) []Point {
	segs := m.Segments(p)
	pts := make([]Point, 0, len(segs)*m.cfg.Samples)
	for _, s := range segs {
		pts = append(pts, m.Sample(s)...)
	}
	return pts
}

// Impacts returns every ground contact, including the one ending the final fall.
func (m *Model) Impacts(p Params) []Impact {
	var out []Impact
	for _, s := range m.Segments(p) {
		if s.Kind != Fall {
			continue
		}
		out = append(out, Impact{Time: s.End, Speed: m.ImpactSpeed(s.Apex)})
	}
	return out
}

// ImpactSpeed returns the speed at the floor after falling from rest at h,
// v = √(2gh).
func (m *Model) ImpactSpeed(h float64) float64 {
	return math.Sqrt(2 * m.cfg.Gravity * h)
}

// Duration returns the end time of the final fall, i.e. the time span covered
// by Trajectory.
func (m *Model) Duration(p Params) float64 {
	segs := m.Segments(p)
	return segs[len(segs)-1].End
}
