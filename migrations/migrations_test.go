package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"phm/internal/db"
	"phm/internal/model"
	"phm/migrations"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func TestSQLiteMigrations(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect("sqlite3"))

	path := filepath.Join(t.TempDir(), "phm.db")
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)

	require.NoError(t, goose.Up(conn, "sqlite"))
	version, err := goose.GetDBVersion(conn)
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)

	// every down migration must apply cleanly too
	require.NoError(t, goose.DownTo(conn, "sqlite", 0))
	require.NoError(t, goose.Up(conn, "sqlite"))
	require.NoError(t, conn.Close())

	// the migrated schema is the one the repositories work with
	database, err := db.NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	ctx := context.Background()

	patient := model.PatientInfo{
		Id:       "1",
		Name:     "Ivan",
		Surname:  "Petrov",
		Birthday: time.Date(1980, time.November, 26, 0, 0, 0, 0, time.UTC),
		HealthInfo: &model.HealthInfo{
			NormalTemperature: decimal.NewNullDecimal(decimal.RequireFromString("36.65")),
			BloodPressure:     &model.BloodPressure{Upper: 120, Lower: 80},
		},
	}
	require.NoError(t, database.PatientsRepo().AddPatient(ctx, patient))

	got, err := database.PatientsRepo().GetById(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got.HealthInfo)
	assert.Equal(t, "36.65", got.HealthInfo.NormalTemperature.Decimal.String())
	assert.Equal(t, patient.HealthInfo.BloodPressure, got.HealthInfo.BloodPressure)

	require.NoError(t, database.ChatsRepo().AddChat(ctx, model.Chat{Id: 10, IsSubscribed: true}))
	chats, err := database.ChatsRepo().GetAllSubscribedChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Chat{{Id: 10, IsSubscribed: true}}, chats)
}

func TestMigrationsPerDialect(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		files, err := migrations.FS.ReadDir(dir)
		require.NoError(t, err)

		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		assert.Equal(t, []string{"00001_create_patients.sql", "00002_create_chats.sql"}, names, dir)
	}
}
