package service

import (
	"database/sql"
	"fmt"

	"github.com/imperador1k/dieta/internal/model"
)

type SetBodyGoalInput struct {
	TargetWeight  float64
	Unit          string
	EffectiveDate string
}

func SetBodyGoal(db *sql.DB, in SetBodyGoalInput) error {
	weightKg, err := convertWeightToKg(in.TargetWeight, in.Unit)
	if err != nil {
		return err
	}
	effective, err := normalizeDate(in.EffectiveDate)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO body_goals(target_weight_kg, effective_date)
VALUES(?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  target_weight_kg=excluded.target_weight_kg
`, weightKg, effective)
	if err != nil {
		return fmt.Errorf("set body goal: %w", err)
	}
	return nil
}

// CurrentBodyGoal returns the goal in effect on date, or nil.
func CurrentBodyGoal(db *sql.DB, date string) (*model.BodyGoal, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	var out model.BodyGoal
	err = db.QueryRow(`
SELECT id, target_weight_kg, effective_date, created_at
FROM body_goals
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, date).Scan(&out.ID, &out.TargetWeightKg, &out.EffectiveDate, &out.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("current body goal for %s: %w", date, err)
	}
	return &out, nil
}
