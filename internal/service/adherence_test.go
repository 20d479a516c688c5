package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imperador1k/dieta/internal/service"
)

func TestProgressPercentage(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 50, service.ProgressPercentage(1000, 2000), 1e-9)
	assert.InDelta(t, 150, service.ProgressPercentage(3000, 2000), 1e-9)
	assert.Zero(t, service.ProgressPercentage(500, 0))
	assert.Equal(t, 100.0, service.ClampPercent(150))
	assert.Equal(t, 0.0, service.ClampPercent(-3))
	assert.Equal(t, 42.0, service.ClampPercent(42))
}

func TestAdherenceWithin(t *testing.T) {
	t.Parallel()
	assert.True(t, service.AdherenceWithin(2100, 2000, 0.10))
	assert.False(t, service.AdherenceWithin(2300, 2000, 0.10))
	assert.True(t, service.AdherenceWithin(0, 0, 0.10))
}

func TestOverageColorBoundaries(t *testing.T) {
	t.Parallel()
	const target = 2000.0

	within := service.OverageColor(target, target)
	assert.False(t, within.Over)
	assert.Zero(t, within.Ratio)
	assert.Equal(t, service.HSL{Hue: 258, Saturation: 100, Lightness: 80}, within.Color)
	assert.Equal(t, within, service.OverageColor(1200, target))

	far := service.OverageColor(1.25*target, target)
	assert.True(t, far.Over)
	assert.InDelta(t, 1, far.Ratio, 1e-12)
	assert.InDelta(t, 0, far.Color.Hue, 1e-9)
	assert.InDelta(t, 63, far.Color.Saturation, 1e-9)
	assert.InDelta(t, 31, far.Color.Lightness, 1e-9)

	assert.Equal(t, far, service.OverageColor(1.5*target, target))
}

func TestOverageColorInterpolates(t *testing.T) {
	t.Parallel()
	half := service.OverageColor(2250, 2000)
	assert.InDelta(t, 0.5, half.Ratio, 1e-12)
	assert.InDelta(t, 129, half.Color.Hue, 1e-9)
	assert.InDelta(t, 81.5, half.Color.Saturation, 1e-9)
	assert.InDelta(t, 55.5, half.Color.Lightness, 1e-9)
	assert.Equal(t, "hsl(129, 82%, 56%)", half.Color.String())
}

func TestOverageColorZeroTarget(t *testing.T) {
	t.Parallel()
	got := service.OverageColor(10, 0)
	assert.True(t, got.Over)
	assert.Equal(t, 1.0, got.Ratio)
}

func TestTrendDeltaSignAndPolarity(t *testing.T) {
	t.Parallel()
	down := service.TrendDelta(70, 75, false)
	assert.InDelta(t, 5, down.Magnitude, 1e-12)
	assert.InDelta(t, -5, down.Delta, 1e-12)
	assert.False(t, down.IsPositive)
	assert.Equal(t, service.TrendGood, down.Classification)

	up := service.TrendDelta(75, 70, false)
	assert.Equal(t, service.TrendBad, up.Classification)
	assert.True(t, up.IsPositive)

	assert.Equal(t, service.TrendGood, service.TrendDelta(75, 70, true).Classification)
	assert.Equal(t, service.TrendBad, service.TrendDelta(70, 75, true).Classification)

	for _, polarity := range []bool{true, false} {
		same := service.TrendDelta(72.5, 72.5, polarity)
		assert.Equal(t, service.TrendNone, same.Classification)
		assert.Zero(t, same.Magnitude)
	}
}
