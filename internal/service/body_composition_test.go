package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperador1k/dieta/internal/model"
	"github.com/imperador1k/dieta/internal/service"
)

func TestEstimateBodyCompositionMaleKnownValue(t *testing.T) {
	t.Parallel()
	got, ok := service.EstimateBodyComposition(service.BodyCompositionInput{
		Gender:   model.GenderMale,
		HeightCm: floatPtr(180),
		WeightKg: floatPtr(80),
		NeckCm:   floatPtr(38),
		WaistCm:  floatPtr(85),
	})
	require.True(t, ok)
	assert.InDelta(t, 16.106606138198572, got.BodyFatPct, 1e-9)
	assert.InDelta(t, 12.885284910558857, got.FatMassKg, 1e-9)
	assert.InDelta(t, 80, got.FatMassKg+got.LeanMassKg, 1e-9)
}

func TestEstimateBodyCompositionFemaleKnownValue(t *testing.T) {
	t.Parallel()
	got, ok := service.EstimateBodyComposition(service.BodyCompositionInput{
		Gender:   model.GenderFemale,
		HeightCm: floatPtr(165),
		WeightKg: floatPtr(60),
		NeckCm:   floatPtr(34),
		WaistCm:  floatPtr(75),
		HipsCm:   floatPtr(100),
	})
	require.True(t, ok)
	assert.InDelta(t, 28.935871381157824, got.BodyFatPct, 1e-9)
	assert.InDelta(t, 60, got.FatMassKg+got.LeanMassKg, 1e-9)
}

func TestEstimateBodyCompositionNoResult(t *testing.T) {
	t.Parallel()
	full := func() service.BodyCompositionInput {
		return service.BodyCompositionInput{
			Gender:   model.GenderMale,
			HeightCm: floatPtr(180),
			WeightKg: floatPtr(80),
			NeckCm:   floatPtr(38),
			WaistCm:  floatPtr(85),
		}
	}
	cases := []struct {
		name string
		mut  func(*service.BodyCompositionInput)
	}{
		{"missing height", func(in *service.BodyCompositionInput) { in.HeightCm = nil }},
		{"missing weight", func(in *service.BodyCompositionInput) { in.WeightKg = nil }},
		{"missing neck", func(in *service.BodyCompositionInput) { in.NeckCm = nil }},
		{"missing waist", func(in *service.BodyCompositionInput) { in.WaistCm = nil }},
		{"female without hips", func(in *service.BodyCompositionInput) { in.Gender = model.GenderFemale }},
		{"unknown gender", func(in *service.BodyCompositionInput) { in.Gender = "" }},
		{"waist below neck", func(in *service.BodyCompositionInput) { in.NeckCm, in.WaistCm = floatPtr(40), floatPtr(35) }},
		{"waist equals neck", func(in *service.BodyCompositionInput) { in.WaistCm = floatPtr(38) }},
		{"non-positive result", func(in *service.BodyCompositionInput) { in.WaistCm = floatPtr(39) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := full()
			tc.mut(&in)
			_, ok := service.EstimateBodyComposition(in)
			assert.False(t, ok)
		})
	}
}

func TestBodyCompositionForUsesProfile(t *testing.T) {
	t.Parallel()
	m := model.BodyMeasurement{Date: "2026-03-01", WeightKg: floatPtr(80), NeckCm: floatPtr(38), WaistCm: floatPtr(85)}

	_, ok := service.BodyCompositionFor(nil, m)
	assert.False(t, ok)

	got, ok := service.BodyCompositionFor(&model.Profile{Gender: model.GenderMale, HeightCm: 180}, m)
	require.True(t, ok)
	assert.InDelta(t, 16.1066, got.BodyFatPct, 1e-4)
}
