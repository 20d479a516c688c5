package service

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/imperador1k/dieta/internal/model"
)

// cacheTolerance absorbs float round-trips through SQLite REAL columns.
const cacheTolerance = 1e-6

type DoctorReport struct {
	StaleMealTotals    int
	UndecodableMeals   int
	ActivePlans        int
	FixedMealTotals    int
	StaleMealIDs       []string
	UndecodableMealIDs []string
}

func (r DoctorReport) HasIssues() bool {
	return r.StaleMealTotals > 0 || r.UndecodableMeals > 0 || r.ActivePlans > 1
}

// RunDoctor checks that every meal's cached totals match a recompute from its
// items and that at most one plan is active. With fix set, stale caches are
// rewritten.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	var report DoctorReport

	rows, err := db.Query(`SELECT id, items_json, total_calories, protein, carbs, fat FROM meals`)
	if err != nil {
		return report, fmt.Errorf("scan meals for doctor: %w", err)
	}
	type stale struct {
		id     string
		totals Totals
	}
	toFix := make([]stale, 0)
	for rows.Next() {
		var id, raw string
		var cached Totals
		if err := rows.Scan(&id, &raw, &cached.Calories, &cached.Protein, &cached.Carbs, &cached.Fat); err != nil {
			rows.Close()
			return report, fmt.Errorf("scan meal row: %w", err)
		}
		items, err := decodeMealItems(raw)
		if err != nil {
			report.UndecodableMeals++
			report.UndecodableMealIDs = append(report.UndecodableMealIDs, id)
			continue
		}
		want := PlannedMealTotals(model.Meal{Items: items})
		if !totalsEqual(cached, want) {
			report.StaleMealTotals++
			report.StaleMealIDs = append(report.StaleMealIDs, id)
			toFix = append(toFix, stale{id: id, totals: want})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return report, fmt.Errorf("iterate meals for doctor: %w", err)
	}
	rows.Close()

	if err := db.QueryRow(`SELECT COUNT(1) FROM plans WHERE is_active = 1`).Scan(&report.ActivePlans); err != nil {
		return report, fmt.Errorf("count active plans: %w", err)
	}

	if fix {
		for _, s := range toFix {
			if _, err := db.Exec(`
UPDATE meals SET total_calories = ?, protein = ?, carbs = ?, fat = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, s.totals.Calories, s.totals.Protein, s.totals.Carbs, s.totals.Fat, s.id); err != nil {
				return report, fmt.Errorf("fix totals for meal %s: %w", s.id, err)
			}
			report.FixedMealTotals++
		}
	}
	return report, nil
}

func totalsEqual(a, b Totals) bool {
	return math.Abs(a.Calories-b.Calories) <= cacheTolerance &&
		math.Abs(a.Protein-b.Protein) <= cacheTolerance &&
		math.Abs(a.Carbs-b.Carbs) <= cacheTolerance &&
		math.Abs(a.Fat-b.Fat) <= cacheTolerance
}
