package setup

import (
	"log/slog"
	"os"
	"phm/internal/alert"
	"phm/internal/broker"
	"phm/internal/config"
	"phm/internal/db"
	"phm/internal/lib/sl"
	"phm/internal/medical"
	"strings"
)

type DatabaseCreator = func() db.Database

var Drivers = map[string]DatabaseCreator{
	"postgres": func() db.Database {
		return connectToPostgres(config.NewPostgresConfig())
	},
	"sqlite": func() db.Database {
		return connectToSQLite(config.NewSQLiteConfig())
	},
}

func ConnectToDatabase(driverName string) db.Database {
	dbCreator, exists := Drivers[driverName]
	if !exists {
		slog.Error("unknown database driver", slog.String("driver", driverName))
		os.Exit(1)
	}
	return dbCreator()
}

func connectToSQLite(config config.SQLiteConfig) *db.SQLite {
	slog.Info("connecting to SQLite", slog.String("file", config.File))
	db, err := db.NewSQLite(config.File)
	if err != nil {
		slog.Error("failed to create database", sl.Error(err))
		os.Exit(1)
	}
	return db
}

func connectToPostgres(config config.PostgresConfig) *db.Postgres {
	slog.Info("connecting to PostgreSQL", slog.String("host", config.Host), slog.String("db", config.Db))
	db, err := db.NewPostgres(config.URL())
	if err != nil {
		slog.Error("failed to create database", sl.Error(err))
		os.Exit(1)
	}
	return db
}

func ConnectToRabbitMQ(config config.RabbitMQConfig) *broker.RabbitMQ {
	slog.Info("connecting to RabbitMQ", slog.String("host", config.Host))
	broker, err := broker.NewRabbitMQ(config.URL())
	if err != nil {
		slog.Error("failed to connect to RabbitMQ", sl.Error(err))
		os.Exit(1)
	}
	return broker
}

// AlertSender returns the sender selected by the config. The broker is
// only used with the broker sender and may be nil otherwise.
func AlertSender(cfg config.AlertConfig, common config.CommonConfig, publisher alert.AlertPublisher) medical.SendAlertService {
	switch cfg.Sender {
	case config.AlertSenderBroker:
		return alert.NewBrokerSender(publisher, common.BrokerTimeout)
	case config.AlertSenderLog:
		return alert.NewLogSender(slog.Default())
	}
	slog.Error("unknown alert sender", slog.String("sender", cfg.Sender))
	os.Exit(1)
	return nil
}

func SetupLogger(level, format string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
