package db

import (
	"context"
	"database/sql"
	"phm/internal/repository"
	repo "phm/internal/repository/postgres"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ Database = &Postgres{}

// Postgres expects the schema to be applied by the migrator.
type Postgres struct {
	db       *sql.DB
	chats    repository.ChatsProvider
	patients repository.PatientsProvider
}

func NewPostgres(url string) (*Postgres, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{
		db:       db,
		chats:    repo.NewChatsRepo(db),
		patients: repo.NewPatientsRepo(db),
	}, nil
}

func (p *Postgres) DB() *sql.DB {
	return p.db
}

func (p *Postgres) ChatsRepo() repository.ChatsProvider {
	return p.chats
}

func (p *Postgres) PatientsRepo() repository.PatientsProvider {
	return p.patients
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
