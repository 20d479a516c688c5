package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/imperador1k/dieta/internal/model"
)

type PhotoInput struct {
	Date      string
	URL       string
	Width     int
	Height    int
	Weight    *float64
	Unit      string
	RemoteRef string
}

func AddPhoto(db *sql.DB, in PhotoInput) (string, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return "", fmt.Errorf("photo url is required")
	}
	if in.Width <= 0 || in.Height <= 0 {
		return "", fmt.Errorf("photo width and height must be > 0")
	}
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
	id := newID()
	_, err = db.Exec(`
INSERT INTO evolution_photos(id, date, url, width, height, weight_kg, remote_ref)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, id, date, url, in.Width, in.Height, nullFloat(weightKg), strings.TrimSpace(in.RemoteRef))
	if err != nil {
		return "", fmt.Errorf("add photo: %w", err)
	}
	return id, nil
}

const photoColumns = `id, date, url, width, height, weight_kg, remote_ref, created_at`

func scanPhoto(row rowScanner) (model.EvolutionPhoto, error) {
	var p model.EvolutionPhoto
	var weight sql.NullFloat64
	if err := row.Scan(&p.ID, &p.Date, &p.URL, &p.Width, &p.Height, &weight, &p.RemoteRef, &p.CreatedAt); err != nil {
		return model.EvolutionPhoto{}, err
	}
	p.WeightKg = floatPtrFromNull(weight)
	return p, nil
}

// ListPhotos returns photos newest first.
func ListPhotos(db *sql.DB) ([]model.EvolutionPhoto, error) {
	rows, err := db.Query(`SELECT ` + photoColumns + ` FROM evolution_photos ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()
	items := make([]model.EvolutionPhoto, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return items, nil
}

// DeletePhoto removes the record and returns it so the caller can clean up
// the remote asset referenced by RemoteRef.
func DeletePhoto(db *sql.DB, id string) (*model.EvolutionPhoto, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("photo id is required")
	}
	p, err := scanPhoto(db.QueryRow(`SELECT `+photoColumns+` FROM evolution_photos WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("photo %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get photo %s: %w", id, err)
	}
	res, err := db.Exec(`DELETE FROM evolution_photos WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("delete photo %s: %w", id, err)
	}
	if err := checkAffected(res, fmt.Sprintf("photo %s", id)); err != nil {
		return nil, err
	}
	return &p, nil
}
