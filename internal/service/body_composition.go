package service

import (
	"math"

	"github.com/imperador1k/dieta/internal/model"
)

// BodyCompositionInput holds the circumference set used by the U.S. Navy
// method. Nil fields are missing measurements.
type BodyCompositionInput struct {
	Gender   model.Gender
	HeightCm *float64
	WeightKg *float64
	NeckCm   *float64
	WaistCm  *float64
	HipsCm   *float64
}

type BodyComposition struct {
	BodyFatPct float64 `json:"body_fat_pct"`
	FatMassKg  float64 `json:"fat_mass_kg"`
	LeanMassKg float64 `json:"lean_mass_kg"`
}

// EstimateBodyComposition returns ok=false when a required measurement is
// missing (hips are required for women) or when the formula does not yield a
// finite positive percentage, e.g. waist <= neck.
func EstimateBodyComposition(in BodyCompositionInput) (BodyComposition, bool) {
	if in.HeightCm == nil || in.WeightKg == nil || in.NeckCm == nil || in.WaistCm == nil {
		return BodyComposition{}, false
	}
	height, weight, neck, waist := *in.HeightCm, *in.WeightKg, *in.NeckCm, *in.WaistCm

	var pct float64
	switch in.Gender {
	case model.GenderMale:
		pct = 495/(1.0324-0.19077*math.Log10(waist-neck)+0.15456*math.Log10(height)) - 450
	case model.GenderFemale:
		if in.HipsCm == nil {
			return BodyComposition{}, false
		}
		hips := *in.HipsCm
		pct = 495/(1.29579-0.35004*math.Log10(waist+hips-neck)+0.22100*math.Log10(height)) - 450
	default:
		return BodyComposition{}, false
	}
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct <= 0 {
		return BodyComposition{}, false
	}

	fat := weight * pct / 100
	return BodyComposition{
		BodyFatPct: pct,
		FatMassKg:  fat,
		LeanMassKg: weight - fat,
	}, true
}

// BodyCompositionFor combines a profile with one day's measurement.
func BodyCompositionFor(p *model.Profile, m model.BodyMeasurement) (BodyComposition, bool) {
	if p == nil || p.HeightCm <= 0 {
		return BodyComposition{}, false
	}
	height := p.HeightCm
	return EstimateBodyComposition(BodyCompositionInput{
		Gender:   p.Gender,
		HeightCm: &height,
		WeightKg: m.WeightKg,
		NeckCm:   m.NeckCm,
		WaistCm:  m.WaistCm,
		HipsCm:   m.HipsCm,
	})
}
