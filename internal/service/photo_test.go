package service_test

import (
	"testing"

	"github.com/imperador1k/dieta/internal/service"
)

func TestPhotoAddListDelete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	older, err := service.AddPhoto(db, service.PhotoInput{Date: "2026-01-01", URL: "https://img.example/a.jpg", Width: 800, Height: 1200})
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}
	newer, err := service.AddPhoto(db, service.PhotoInput{Date: "2026-02-01", URL: "https://img.example/b.jpg", Width: 800, Height: 1200, Weight: floatPtr(170), Unit: "lb", RemoteRef: "evolution/b"})
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}

	photos, err := service.ListPhotos(db)
	if err != nil {
		t.Fatalf("list photos: %v", err)
	}
	if len(photos) != 2 || photos[0].ID != newer || photos[1].ID != older {
		t.Fatalf("expected newest first, got %+v", photos)
	}
	if photos[0].WeightKg == nil || *photos[0].WeightKg < 77 || *photos[0].WeightKg > 78 {
		t.Fatalf("expected converted weight around 77.1kg")
	}
	if photos[1].WeightKg != nil {
		t.Fatalf("expected no weight on first photo")
	}

	deleted, err := service.DeletePhoto(db, newer)
	if err != nil {
		t.Fatalf("delete photo: %v", err)
	}
	if deleted.RemoteRef != "evolution/b" {
		t.Fatalf("expected remote ref to be returned, got %q", deleted.RemoteRef)
	}
	if _, err := service.DeletePhoto(db, newer); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}

func TestPhotoValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	if _, err := service.AddPhoto(db, service.PhotoInput{Width: 1, Height: 1}); err == nil {
		t.Fatalf("expected missing url error")
	}
	if _, err := service.AddPhoto(db, service.PhotoInput{URL: "x", Width: 0, Height: 1}); err == nil {
		t.Fatalf("expected dimension error")
	}
}
