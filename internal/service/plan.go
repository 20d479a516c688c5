package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imperador1k/dieta/internal/model"
)

type PlanInput struct {
	Name        string
	Description string
	Targets     model.Targets
	Variations  []string
}

func validateTargets(t model.Targets) error {
	if err := validateNonNegativeFloat("calories", t.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", t.Protein); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", t.Carbs); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", t.Fat); err != nil {
		return err
	}
	return nil
}

func CreatePlan(db *sql.DB, in PlanInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("plan name is required")
	}
	if err := validateTargets(in.Targets); err != nil {
		return "", err
	}
	variations := make([]model.Variation, 0, len(in.Variations))
	for _, v := range in.Variations {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		variations = append(variations, model.Variation{ID: newID(), Name: v})
	}
	raw, err := json.Marshal(variations)
	if err != nil {
		return "", fmt.Errorf("marshal variations: %w", err)
	}
	id := newID()
	_, err = db.Exec(`
INSERT INTO plans(id, name, description, target_calories, target_protein, target_carbs, target_fat, variations_json)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, id, name, strings.TrimSpace(in.Description), in.Targets.Calories, in.Targets.Protein, in.Targets.Carbs, in.Targets.Fat, string(raw))
	if err != nil {
		return "", fmt.Errorf("create plan: %w", err)
	}
	return id, nil
}

const planColumns = `id, name, description, is_active, target_calories, target_protein, target_carbs, target_fat, variations_json, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (model.Plan, error) {
	var p model.Plan
	var active int
	var variationsRaw string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &active, &p.Targets.Calories, &p.Targets.Protein, &p.Targets.Carbs, &p.Targets.Fat, &variationsRaw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Plan{}, err
	}
	p.IsActive = active == 1
	p.Variations = []model.Variation{}
	if strings.TrimSpace(variationsRaw) != "" {
		if err := json.Unmarshal([]byte(variationsRaw), &p.Variations); err != nil {
			return model.Plan{}, fmt.Errorf("decode variations for plan %s: %w", p.ID, err)
		}
	}
	return p, nil
}

func ListPlans(db *sql.DB) ([]model.Plan, error) {
	rows, err := db.Query(`SELECT ` + planColumns + ` FROM plans ORDER BY is_active DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	plans := make([]model.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

// ResolvePlan looks a plan up by id first, then by case-insensitive name.
func ResolvePlan(db *sql.DB, identifier string) (*model.Plan, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("plan id or name is required")
	}
	p, err := scanPlan(db.QueryRow(`SELECT `+planColumns+` FROM plans WHERE id = ? OR name = ? COLLATE NOCASE ORDER BY (id = ?) DESC LIMIT 1`, identifier, identifier, identifier))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %q not found", identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve plan %q: %w", identifier, err)
	}
	return &p, nil
}

// ActivePlan returns nil when no plan is active.
func ActivePlan(db *sql.DB) (*model.Plan, error) {
	p, err := scanPlan(db.QueryRow(`SELECT ` + planColumns + ` FROM plans WHERE is_active = 1 ORDER BY updated_at DESC LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active plan: %w", err)
	}
	return &p, nil
}

// ActivatePlan marks one plan active and every other plan inactive.
func ActivatePlan(db *sql.DB, identifier string) error {
	p, err := ResolvePlan(db, identifier)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin activate tx: %w", err)
	}
	if _, err := tx.Exec(`UPDATE plans SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE is_active = 1 AND id <> ?`, p.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("deactivate plans: %w", err)
	}
	if _, err := tx.Exec(`UPDATE plans SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, p.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("activate plan %s: %w", p.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate plan: %w", err)
	}
	return nil
}

func UpdatePlanTargets(db *sql.DB, identifier string, t model.Targets) error {
	if err := validateTargets(t); err != nil {
		return err
	}
	p, err := ResolvePlan(db, identifier)
	if err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE plans
SET target_calories = ?, target_protein = ?, target_carbs = ?, target_fat = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, t.Calories, t.Protein, t.Carbs, t.Fat, p.ID)
	if err != nil {
		return fmt.Errorf("update plan targets %s: %w", p.ID, err)
	}
	return checkAffected(res, fmt.Sprintf("plan %s", p.ID))
}

func AddVariation(db *sql.DB, planIdentifier, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("variation name is required")
	}
	p, err := ResolvePlan(db, planIdentifier)
	if err != nil {
		return "", err
	}
	for _, v := range p.Variations {
		if normalizeName(v.Name) == normalizeName(name) {
			return "", fmt.Errorf("variation %q already exists in plan %q", name, p.Name)
		}
	}
	v := model.Variation{ID: newID(), Name: name}
	if err := saveVariations(db, p.ID, append(p.Variations, v)); err != nil {
		return "", err
	}
	return v.ID, nil
}

func RemoveVariation(db *sql.DB, planIdentifier, variation string) error {
	p, err := ResolvePlan(db, planIdentifier)
	if err != nil {
		return err
	}
	v, err := FindVariation(p, variation)
	if err != nil {
		return err
	}
	kept := make([]model.Variation, 0, len(p.Variations))
	for _, existing := range p.Variations {
		if existing.ID != v.ID {
			kept = append(kept, existing)
		}
	}
	return saveVariations(db, p.ID, kept)
}

// FindVariation matches a plan variation by id or case-insensitive name.
func FindVariation(p *model.Plan, identifier string) (model.Variation, error) {
	identifier = strings.TrimSpace(identifier)
	for _, v := range p.Variations {
		if v.ID == identifier || normalizeName(v.Name) == normalizeName(identifier) {
			return v, nil
		}
	}
	return model.Variation{}, fmt.Errorf("variation %q not found in plan %q", identifier, p.Name)
}

func saveVariations(db *sql.DB, planID string, variations []model.Variation) error {
	raw, err := json.Marshal(variations)
	if err != nil {
		return fmt.Errorf("marshal variations: %w", err)
	}
	res, err := db.Exec(`UPDATE plans SET variations_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(raw), planID)
	if err != nil {
		return fmt.Errorf("save variations for plan %s: %w", planID, err)
	}
	return checkAffected(res, fmt.Sprintf("plan %s", planID))
}

func DeletePlan(db *sql.DB, identifier string) error {
	p, err := ResolvePlan(db, identifier)
	if err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM plans WHERE id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", p.ID, err)
	}
	return checkAffected(res, fmt.Sprintf("plan %s", p.ID))
}
