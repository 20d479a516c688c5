package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/imperador1k/dieta/internal/model"
)

type ProfileInput struct {
	Name      string
	Email     string
	Age       int
	Height    float64
	Gender    string
	AvatarRef string
}

func ParseGender(value string) (model.Gender, error) {
	switch g := model.Gender(strings.ToLower(strings.TrimSpace(value))); g {
	case model.GenderMale, model.GenderFemale:
		return g, nil
	default:
		return "", fmt.Errorf("invalid gender %q (use male or female)", value)
	}
}

// SaveProfile creates or replaces the single local profile.
func SaveProfile(db *sql.DB, in ProfileInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if in.Age < 0 {
		return fmt.Errorf("age must be >= 0")
	}
	if err := validatePositiveFloat("height", in.Height); err != nil {
		return err
	}
	gender, err := ParseGender(in.Gender)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO profile(id, name, email, age, height_cm, gender, avatar_ref, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  email=excluded.email,
  age=excluded.age,
  height_cm=excluded.height_cm,
  gender=excluded.gender,
  avatar_ref=excluded.avatar_ref,
  updated_at=excluded.updated_at
`, name, strings.TrimSpace(in.Email), in.Age, in.Height, string(gender), strings.TrimSpace(in.AvatarRef))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile returns nil when no profile has been saved yet.
func GetProfile(db *sql.DB) (*model.Profile, error) {
	var p model.Profile
	var gender string
	err := db.QueryRow(`
SELECT name, email, age, height_cm, gender, avatar_ref, updated_at
FROM profile WHERE id = 1
`).Scan(&p.Name, &p.Email, &p.Age, &p.HeightCm, &gender, &p.AvatarRef, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Gender = model.Gender(gender)
	return &p, nil
}
