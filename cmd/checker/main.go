package main

import (
	"log/slog"
	"os"
	"phm/internal/checker"
	"phm/internal/config"
	"phm/internal/lib/setup"
	"phm/internal/lib/sl"
	"phm/internal/medical"
	"phm/internal/service"
)

func main() {
	cfg := config.NewCheckerConfig()
	setup.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	db := setup.ConnectToDatabase(cfg.DbDriver)
	defer db.Close()

	broker := setup.ConnectToRabbitMQ(config.NewRabbitMQConfig())
	defer broker.Close()

	patientsService := service.NewPatientsService(db.PatientsRepo(), cfg.CommonConfig)
	alerts := setup.AlertSender(cfg.AlertConfig, cfg.CommonConfig, broker)
	medicalService := medical.New(patientsService, alerts)

	checker := checker.New(broker, medicalService, cfg)
	slog.Info("starting checker service", slog.Int("workers", cfg.Workers))
	if err := checker.Start(); err != nil {
		slog.Error("error from checker", sl.Error(err))
		os.Exit(1)
	}
}
