package db

import (
	"context"
	"testing"
	"time"

	"phm/internal/model"
	"phm/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLite_Patients(t *testing.T) {
	db := newTestSQLite(t)
	repo := db.PatientsRepo()
	ctx := context.Background()

	full := model.PatientInfo{
		Id:       "1",
		Name:     "Ivan",
		Surname:  "Petrov",
		Birthday: time.Date(1980, time.November, 26, 0, 0, 0, 0, time.UTC),
		HealthInfo: &model.HealthInfo{
			NormalTemperature: decimal.NewNullDecimal(decimal.RequireFromString("36.65")),
			BloodPressure:     &model.BloodPressure{Upper: 120, Lower: 80},
		},
	}
	pressureOnly := model.PatientInfo{
		Id:       "2",
		Name:     "Semen",
		Surname:  "Mikhailov",
		Birthday: time.Date(1982, time.January, 16, 0, 0, 0, 0, time.UTC),
		HealthInfo: &model.HealthInfo{
			BloodPressure: &model.BloodPressure{Upper: 125, Lower: 78},
		},
	}
	noBaseline := model.PatientInfo{
		Id:       "3",
		Name:     "Anna",
		Surname:  "Ivanova",
		Birthday: time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, p := range []model.PatientInfo{full, pressureOnly, noBaseline} {
		require.NoError(t, repo.AddPatient(ctx, p))
	}

	got, err := repo.GetById(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Ivan", got.Name)
	assert.True(t, full.Birthday.Equal(got.Birthday))
	require.NotNil(t, got.HealthInfo)
	require.True(t, got.HealthInfo.NormalTemperature.Valid)
	assert.True(t, got.HealthInfo.NormalTemperature.Decimal.Equal(decimal.RequireFromString("36.65")))
	assert.Equal(t, &model.BloodPressure{Upper: 120, Lower: 80}, got.HealthInfo.BloodPressure)

	got, err = repo.GetById(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, got.HealthInfo)
	assert.False(t, got.HealthInfo.NormalTemperature.Valid)
	assert.Equal(t, &model.BloodPressure{Upper: 125, Lower: 78}, got.HealthInfo.BloodPressure)

	got, err = repo.GetById(ctx, "3")
	require.NoError(t, err)
	assert.Nil(t, got.HealthInfo)

	all, err := repo.GetAllPatients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{all[0].Id, all[1].Id, all[2].Id})

	_, err = repo.GetById(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)

	require.NoError(t, repo.DeletePatientById(ctx, "1"))
	_, err = repo.GetById(ctx, "1")
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)
	assert.ErrorIs(t, repo.DeletePatientById(ctx, "1"), repository.ErrPatientNotFound)
}

func TestSQLite_AddPatientDuplicateId(t *testing.T) {
	db := newTestSQLite(t)
	repo := db.PatientsRepo()
	ctx := context.Background()

	p := model.PatientInfo{Id: "1", Name: "Ivan", Surname: "Petrov", Birthday: time.Now().UTC()}
	require.NoError(t, repo.AddPatient(ctx, p))
	assert.Error(t, repo.AddPatient(ctx, p))
}

func TestSQLite_Chats(t *testing.T) {
	db := newTestSQLite(t)
	repo := db.ChatsRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddChat(ctx, model.Chat{Id: 10, IsSubscribed: true}))
	require.NoError(t, repo.AddChat(ctx, model.Chat{Id: 20, IsSubscribed: true}))
	require.NoError(t, repo.AddChat(ctx, model.Chat{Id: 30, IsSubscribed: false}))

	chats, err := repo.GetAllSubscribedChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Chat{{Id: 10, IsSubscribed: true}, {Id: 20, IsSubscribed: true}}, chats)

	require.NoError(t, repo.UpdateChat(ctx, model.Chat{Id: 10, IsSubscribed: false}))
	// subscribing again flips the existing row
	require.NoError(t, repo.AddChat(ctx, model.Chat{Id: 30, IsSubscribed: true}))

	chats, err = repo.GetAllSubscribedChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Chat{{Id: 20, IsSubscribed: true}, {Id: 30, IsSubscribed: true}}, chats)
}
