package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/imperador1k/dieta/internal/model"
)

// BodyMeasurementInput carries optional metrics; Weight is in Unit (kg or lb),
// circumferences are in centimetres.
type BodyMeasurementInput struct {
	Date    string
	Weight  *float64
	Unit    string
	NeckCm  *float64
	WaistCm *float64
	HipsCm  *float64
	Notes   string
}

type BodyMeasurementFilter struct {
	FromDate string
	ToDate   string
	Limit    int
}

// SaveBodyMeasurement upserts the measurement for its calendar day. A later
// save for the same day replaces the earlier one.
func SaveBodyMeasurement(db *sql.DB, in BodyMeasurementInput) (string, error) {
	date, err := normalizeDate(in.Date)
	if err != nil {
		return "", err
	}
	var weightKg *float64
	if in.Weight != nil {
		kg, err := convertWeightToKg(*in.Weight, in.Unit)
		if err != nil {
			return "", err
		}
		weightKg = &kg
	}
	if err := validateOptionalPositive("neck", in.NeckCm); err != nil {
		return "", err
	}
	if err := validateOptionalPositive("waist", in.WaistCm); err != nil {
		return "", err
	}
	if err := validateOptionalPositive("hips", in.HipsCm); err != nil {
		return "", err
	}
	if weightKg == nil && in.NeckCm == nil && in.WaistCm == nil && in.HipsCm == nil {
		return "", fmt.Errorf("at least one of weight, neck, waist or hips is required")
	}
	_, err = db.Exec(`
INSERT INTO body_measurements(date, weight_kg, neck_cm, waist_cm, hips_cm, notes)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  weight_kg=excluded.weight_kg,
  neck_cm=excluded.neck_cm,
  waist_cm=excluded.waist_cm,
  hips_cm=excluded.hips_cm,
  notes=excluded.notes,
  updated_at=CURRENT_TIMESTAMP
`, date, nullFloat(weightKg), nullFloat(in.NeckCm), nullFloat(in.WaistCm), nullFloat(in.HipsCm), strings.TrimSpace(in.Notes))
	if err != nil {
		return "", fmt.Errorf("save body measurement %s: %w", date, err)
	}
	return date, nil
}

// ListBodyMeasurements returns measurements newest first.
func ListBodyMeasurements(db *sql.DB, f BodyMeasurementFilter) ([]model.BodyMeasurement, error) {
	query := `SELECT date, weight_kg, neck_cm, waist_cm, hips_cm, notes FROM body_measurements WHERE 1=1`
	args := make([]any, 0)
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := normalizeDate(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := normalizeDate(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list body measurements: %w", err)
	}
	defer rows.Close()

	items := make([]model.BodyMeasurement, 0)
	for rows.Next() {
		var m model.BodyMeasurement
		var weight, neck, waist, hips sql.NullFloat64
		if err := rows.Scan(&m.Date, &weight, &neck, &waist, &hips, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan body measurement: %w", err)
		}
		m.WeightKg = floatPtrFromNull(weight)
		m.NeckCm = floatPtrFromNull(neck)
		m.WaistCm = floatPtrFromNull(waist)
		m.HipsCm = floatPtrFromNull(hips)
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate body measurements: %w", err)
	}
	return items, nil
}

func DeleteBodyMeasurement(db *sql.DB, date string) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("measurement date is required")
	}
	date, err := normalizeDate(date)
	if err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM body_measurements WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("delete body measurement %s: %w", date, err)
	}
	return checkAffected(res, fmt.Sprintf("body measurement %s", date))
}

// BodyTrends holds two-point trends between the newest measurements that
// carry each metric. Nil means fewer than two data points.
type BodyTrends struct {
	Weight  *Trend
	BodyFat *Trend
}

// ComputeBodyTrends expects measurements newest first. Weight polarity comes
// from the goal: a goal above the current weight makes gaining good. A goal at
// or below it, or no goal, makes losing good. Body fat going down is always good.
func ComputeBodyTrends(p *model.Profile, measurements []model.BodyMeasurement, goal *model.BodyGoal) BodyTrends {
	var out BodyTrends

	weights := make([]float64, 0, 2)
	fats := make([]float64, 0, 2)
	for _, m := range measurements {
		if m.WeightKg != nil && len(weights) < 2 {
			weights = append(weights, *m.WeightKg)
		}
		if len(fats) < 2 {
			if bc, ok := BodyCompositionFor(p, m); ok {
				fats = append(fats, bc.BodyFatPct)
			}
		}
	}

	if len(weights) == 2 {
		gainIsGood := false
		if goal != nil && goal.TargetWeightKg > weights[0] {
			gainIsGood = true
		}
		t := TrendDelta(weights[0], weights[1], gainIsGood)
		out.Weight = &t
	}
	if len(fats) == 2 {
		t := TrendDelta(fats[0], fats[1], false)
		out.BodyFat = &t
	}
	return out
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
