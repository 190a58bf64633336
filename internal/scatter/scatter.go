// Package scatter produces reproducible pseudo-random layouts for the
// decorative particle and sparkle layers.
//
// Nothing here reads a randomness source: every field is a fixed function of
// the point index, so a server render and a later client render of the same
// layer agree bit for bit.
package scatter

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownProfile = errors.New("unknown scatter profile")
	ErrInvalidProfile = errors.New("invalid scatter profile")
)

// MaxCount bounds the number of points the HTTP layer will ask for.
const MaxCount = 1000

// Point is one decorative element. Top and Left are percentages in [0, 100).
type Point struct {
	ID       int     `json:"id"`
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
	Delay    float64 `json:"delay"`
	Duration float64 `json:"duration"`
	Size     float64 `json:"size"`
}

// Profile holds the constants of one layer. Two layers shown together must
// differ in their steps or their Salt.
type Profile struct {
	Name          string
	TopStep       float64
	LeftStep      float64
	DelayStep     float64
	BaseDuration  float64
	DurationCycle int
	BaseSize      float64
	SizeStep      float64
	SizeCycle     int
	Salt          int
}

var (
	// Particles is the slow drifting dot layer behind the hero.
	Particles = Profile{
		Name:          "particles",
		TopStep:       37.5,
		LeftStep:      67.3,
		DelayStep:     0.25,
		BaseDuration:  5,
		DurationCycle: 10,
		BaseSize:      1,
		SizeStep:      1,
		SizeCycle:     3,
	}

	// Sparkles is the faster twinkle layer. Size is used as a scale factor.
	Sparkles = Profile{
		Name:          "sparkles",
		TopStep:       43.7,
		LeftStep:      71.3,
		DelayStep:     0.2,
		BaseDuration:  3,
		DurationCycle: 3,
		BaseSize:      0.8,
		SizeStep:      0.1,
		SizeCycle:     5,
	}
)

var profiles = map[string]Profile{
	Particles.Name: Particles,
	Sparkles.Name:  Sparkles,
}

// Lookup returns a built-in profile by name.
func Lookup(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Names lists the built-in profiles.
func Names() []string {
	return []string{Particles.Name, Sparkles.Name}
}

// Validate checks that a profile yields positive durations and sizes.
func Validate(p Profile) error {
	switch {
	case p.DurationCycle < 1:
		return fmt.Errorf("%w: %s: duration cycle %d", ErrInvalidProfile, p.Name, p.DurationCycle)
	case p.SizeCycle < 1:
		return fmt.Errorf("%w: %s: size cycle %d", ErrInvalidProfile, p.Name, p.SizeCycle)
	case !(p.BaseDuration > 0):
		return fmt.Errorf("%w: %s: base duration %v", ErrInvalidProfile, p.Name, p.BaseDuration)
	case !(p.BaseSize > 0) || p.SizeStep < 0:
		return fmt.Errorf("%w: %s: size %v step %v", ErrInvalidProfile, p.Name, p.BaseSize, p.SizeStep)
	case p.DelayStep < 0:
		return fmt.Errorf("%w: %s: delay step %v", ErrInvalidProfile, p.Name, p.DelayStep)
	}
	return nil
}

// Generate returns count points for p. A count of zero or less yields an
// empty slice. p is assumed valid; see Validate.
func Generate(count int, p Profile) []Point {
	if count < 0 {
		count = 0
	}
	points := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		n := i + p.Salt
		points = append(points, Point{
			ID:       i,
			Top:      percent(n, p.TopStep),
			Left:     percent(n, p.LeftStep),
			Delay:    math.Abs(float64(float64(n) * p.DelayStep)),
			Duration: p.BaseDuration + float64(cycle(n, p.DurationCycle)),
			// Explicit conversions round each product so no platform fuses
			// the multiply into the add.
			Size: p.BaseSize + float64(p.SizeStep*float64(cycle(n, p.SizeCycle))),
		})
	}
	return points
}

// GenerateNamed is Generate for a built-in profile.
func GenerateNamed(count int, name string) ([]Point, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return Generate(count, p), nil
}

func percent(n int, step float64) float64 {
	v := math.Mod(float64(float64(n)*step), 100)
	if v < 0 {
		v += 100
	}
	if v >= 100 || math.IsNaN(v) {
		return 0
	}
	return v
}

func cycle(n, k int) int {
	m := n % k
	if m < 0 {
		m += k
	}
	return m
}
