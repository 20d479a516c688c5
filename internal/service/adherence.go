package service

import (
	"fmt"
	"math"
)

// ProgressPercentage is consumed/target*100, unclamped so overage stays
// visible. A non-positive target yields 0.
func ProgressPercentage(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return consumed / target * 100
}

// ClampPercent bounds a percentage to [0, 100] for progress-bar widths.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// AdherenceWithin reports whether actual lies within target±tolerance, with
// tolerance as a fraction. A zero target only accepts zero.
func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}

// HSL is a color with hue in degrees and saturation/lightness in percent.
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.Hue, c.Saturation, c.Lightness)
}

var (
	withinTargetColor = HSL{Hue: 258, Saturation: 100, Lightness: 80}
	farOverColor      = HSL{Hue: 0, Saturation: 63, Lightness: 31}
)

// overageSpan is the fraction above target at which the ramp saturates.
const overageSpan = 0.25

type Overage struct {
	Over  bool    `json:"over"`
	Ratio float64 `json:"ratio"`
	Color HSL     `json:"color"`
}

// OverageColor maps value against target onto a ramp from the within-target
// color to the far-over color, saturating at 125% of target.
func OverageColor(value, target float64) Overage {
	if !(value > target) {
		return Overage{Color: withinTargetColor}
	}
	ratio := 1.0
	if target > 0 {
		ratio = math.Min((value-target)/(target*overageSpan), 1)
	}
	return Overage{
		Over:  true,
		Ratio: ratio,
		Color: HSL{
			Hue:        lerp(withinTargetColor.Hue, farOverColor.Hue, ratio),
			Saturation: lerp(withinTargetColor.Saturation, farOverColor.Saturation, ratio),
			Lightness:  lerp(withinTargetColor.Lightness, farOverColor.Lightness, ratio),
		},
	}
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

type TrendClass string

const (
	TrendNone TrendClass = "none"
	TrendGood TrendClass = "good"
	TrendBad  TrendClass = "bad"
)

type Trend struct {
	Delta          float64    `json:"delta"`
	Magnitude      float64    `json:"magnitude"`
	IsPositive     bool       `json:"is_positive"`
	Classification TrendClass `json:"classification"`
}

// TrendDelta is the raw difference current-previous, classified by sign and
// by whether an increase is desirable for the metric.
func TrendDelta(current, previous float64, positiveIsGood bool) Trend {
	delta := current - previous
	t := Trend{Delta: delta, Magnitude: math.Abs(delta), IsPositive: delta > 0}
	switch {
	case delta == 0:
		t.Classification = TrendNone
	case t.IsPositive == positiveIsGood:
		t.Classification = TrendGood
	default:
		t.Classification = TrendBad
	}
	return t
}
