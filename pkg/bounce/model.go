package bounce

// Gravity is the default gravitational acceleration in m/s².
const Gravity = 9.81

// SegmentSamples is the default number of trajectory samples per half-parabola.
const SegmentSamples = 100

// Config holds model coefficients.
// Units:
//   - Gravity: m/s² (must be > 0)
//   - Samples: points per trajectory segment (must be >= 2)
type Config struct {
	Gravity float64
	Samples int
}

// _defaultConfig returns a Config pre-filled with the default coefficients.
func _defaultConfig() *Config {
	return &Config{
		Gravity: Gravity,        // Earth surface
		Samples: SegmentSamples, // per fall or rise
	}
}

// Params are the inputs of a single drop.
// Units:
//   - Height, HeightMin: metres
//   - Eta: fraction of height kept after each bounce, (0, 1)
type Params struct {
	Height    float64 `json:"height"`
	HeightMin float64 `json:"height_min"`
	Eta       float64 `json:"eta"`
}

// Result is the outcome of one simulated drop.
type Result struct {
	Params
	Gravity   float64 `json:"gravity"`
	Bounces   int     `json:"bounces"`
	TotalTime float64 `json:"total_time"`
}

// Point is one trajectory sample.
type Point struct {
	Time   float64 `json:"t"`
	Height float64 `json:"h"`
}

// SegmentKind tells whether a segment goes down to the floor or up to an apex.
type SegmentKind int

const (
	Fall SegmentKind = iota
	Rise
)

func (k SegmentKind) String() string {
	switch k {
	case Fall:
		return "fall"
	case Rise:
		return "rise"
	default:
		return "unknown"
	}
}

// Segment is one half-parabola of the trajectory.
// Apex is the highest point of the parabola the segment belongs to.
type Segment struct {
	Kind  SegmentKind
	Start float64
	End   float64
	Apex  float64
}

// Impact is a ground contact.
type Impact struct {
	Time  float64 // s
	Speed float64 // m/s, just before contact
}
