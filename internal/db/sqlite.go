package db

import (
	"context"
	"database/sql"
	"fmt"
	"phm/internal/repository"
	repo "phm/internal/repository/sqlite"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const patientsScheme = `
CREATE TABLE IF NOT EXISTS patients(
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	surname TEXT NOT NULL,
	birthday DATE NOT NULL,
	normal_temperature TEXT,
	pressure_upper INTEGER,
	pressure_lower INTEGER
)`

const chatsScheme = `
CREATE TABLE IF NOT EXISTS chats(
	id INTEGER PRIMARY KEY,
	is_subscribed BOOLEAN CHECK (is_subscribed IN (0, 1))
)`

var _ Database = &SQLite{}

type SQLite struct {
	db       *sql.DB
	chats    repository.ChatsProvider
	patients repository.PatientsProvider
}

func NewSQLite(dataSourceName string) (*SQLite, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := connectToDB(ctx, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = initDB(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLite{
		db:       db,
		chats:    repo.NewChatsRepo(db),
		patients: repo.NewPatientsRepo(db),
	}, nil
}

func connectToDB(ctx context.Context, dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	// every connection to ":memory:" opens its own database
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func initDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, patientsScheme); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, chatsScheme); err != nil {
		return err
	}

	return nil
}

func (s *SQLite) DB() *sql.DB {
	return s.db
}

func (s *SQLite) ChatsRepo() repository.ChatsProvider {
	return s.chats
}

func (s *SQLite) PatientsRepo() repository.PatientsProvider {
	return s.patients
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
