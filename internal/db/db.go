package db

import (
	"database/sql"
	"phm/internal/repository"
)

type Database interface {
	DB() *sql.DB

	ChatsRepo() repository.ChatsProvider
	PatientsRepo() repository.PatientsProvider

	Close() error
}
