package service

import (
	"context"
	"testing"
	"time"

	"phm/internal/config"
	"phm/internal/db"
	"phm/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPatientsService(t *testing.T) *PatientsService {
	t.Helper()
	database, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return NewPatientsService(database.PatientsRepo(), config.CommonConfig{DbQueryTimeout: time.Second})
}

func TestPatientsService_AddPatient(t *testing.T) {
	svc := newTestPatientsService(t)
	svc.newId = func() string { return "patient-1" }
	ctx := context.Background()

	birthday := time.Date(1980, time.November, 26, 0, 0, 0, 0, time.UTC)
	patient, err := svc.AddPatient(ctx, CreatePatientInput{
		Name:     "  Ivan ",
		Surname:  "Petrov",
		Birthday: birthday,
		HealthInfo: &model.HealthInfo{
			NormalTemperature: decimal.NewNullDecimal(decimal.RequireFromString("36.6")),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "patient-1", patient.Id)
	assert.Equal(t, "Ivan", patient.Name)

	stored, err := svc.GetById(ctx, "patient-1")
	require.NoError(t, err)
	assert.Equal(t, "Petrov", stored.Surname)
	require.NotNil(t, stored.HealthInfo)
	assert.Nil(t, stored.HealthInfo.BloodPressure)
}

func TestPatientsService_AddPatient_GeneratesIds(t *testing.T) {
	svc := newTestPatientsService(t)
	ctx := context.Background()
	in := CreatePatientInput{Name: "Ivan", Surname: "Petrov", Birthday: time.Now().UTC()}

	first, err := svc.AddPatient(ctx, in)
	require.NoError(t, err)
	second, err := svc.AddPatient(ctx, in)
	require.NoError(t, err)

	assert.NotEmpty(t, first.Id)
	assert.NotEqual(t, first.Id, second.Id)

	all, err := svc.GetAllPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPatientsService_AddPatient_InvalidInput(t *testing.T) {
	svc := newTestPatientsService(t)
	ctx := context.Background()

	_, err := svc.AddPatient(ctx, CreatePatientInput{Name: " ", Surname: "Petrov", Birthday: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddPatient(ctx, CreatePatientInput{Name: "Ivan", Surname: "Petrov"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPatientsService_AddPatient_EmptyHealthInfo(t *testing.T) {
	svc := newTestPatientsService(t)
	ctx := context.Background()

	patient, err := svc.AddPatient(ctx, CreatePatientInput{
		Name:       "Anna",
		Surname:    "Ivanova",
		Birthday:   time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
		HealthInfo: &model.HealthInfo{},
	})
	require.NoError(t, err)
	assert.Nil(t, patient.HealthInfo)

	stored, err := svc.GetById(ctx, patient.Id)
	require.NoError(t, err)
	assert.Equal(t, patient.HealthInfo, stored.HealthInfo)
}
