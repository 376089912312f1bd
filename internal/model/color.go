package model

import "fmt"

// Color is an RGB display color for a scored sample or route segment.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Gradient anchor colors. Score 0 renders red, 50 amber, 100 green;
// values in between are interpolated linearly in RGB.
var (
	colorAvoid = Color{R: 0xd3, G: 0x2f, B: 0x2f} // red at score 0
	colorMid   = Color{R: 0xf9, G: 0xa8, B: 0x25} // amber at score 50
	colorGreat = Color{R: 0x2e, G: 0x7d, B: 0x32} // green at score 100
)

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorForScore maps a 0-100 score to a display color using piecewise
// linear interpolation between red, amber, and green. Out-of-range scores
// clamp to the nearest endpoint rather than wrapping.
func ColorForScore(score float64) Color {
	switch {
	case score <= 0:
		return colorAvoid
	case score >= 100:
		return colorGreat
	case score < 50:
		return lerpColor(colorAvoid, colorMid, score/50)
	default:
		return lerpColor(colorMid, colorGreat, (score-50)/50)
	}
}

// SegmentColor returns the gradient midpoint color for the segment between
// two scored samples. A map overlay renders each segment with a two-stop
// gradient; a single midpoint color is the terminal equivalent.
func SegmentColor(from, to ScorePoint) Color {
	return ColorForScore((from.Score + to.Score) / 2)
}

// lerpColor interpolates between two colors. t must be in [0, 1].
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}
