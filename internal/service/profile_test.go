package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperador1k/dieta/internal/model"
	"github.com/imperador1k/dieta/internal/service"
)

func TestSaveProfileUpserts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	p, err := service.GetProfile(db)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, service.SaveProfile(db, service.ProfileInput{Name: "Ana", Age: 30, Height: 165, Gender: "Female"}))
	require.NoError(t, service.SaveProfile(db, service.ProfileInput{Name: "Ana", Email: "ana@example.com", Age: 31, Height: 166, Gender: "female"}))

	p, err = service.GetProfile(db)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.GenderFemale, p.Gender)
	assert.Equal(t, 31, p.Age)
	assert.Equal(t, 166.0, p.HeightCm)
	assert.Equal(t, "ana@example.com", p.Email)

	assert.Error(t, service.SaveProfile(db, service.ProfileInput{Name: "x", Height: 170, Gender: "other"}))
	assert.Error(t, service.SaveProfile(db, service.ProfileInput{Name: "x", Height: 0, Gender: "male"}))
	assert.Error(t, service.SaveProfile(db, service.ProfileInput{Height: 170, Gender: "male"}))
}

func TestConfigValidationAndDefaults(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	unit, err := service.WeightUnit(db)
	require.NoError(t, err)
	assert.Equal(t, "kg", unit)
	size, err := service.USDAPageSize(db)
	require.NoError(t, err)
	assert.Equal(t, 10, size)

	require.NoError(t, service.SetConfig(db, "WEIGHT_UNIT", "lb"))
	assert.Error(t, service.SetConfig(db, service.ConfigWeightUnit, "stone"))
	assert.Error(t, service.SetConfig(db, service.ConfigUSDAPageSize, "0"))
	require.NoError(t, service.SetConfig(db, service.ConfigUSDAPageSize, "25"))

	unit, err = service.WeightUnit(db)
	require.NoError(t, err)
	assert.Equal(t, "lb", unit)
	size, err = service.USDAPageSize(db)
	require.NoError(t, err)
	assert.Equal(t, 25, size)

	cfg, err := service.ListConfig(db)
	require.NoError(t, err)
	assert.Len(t, cfg, 2)
}
