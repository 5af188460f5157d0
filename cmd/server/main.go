package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"phm/internal/alert"
	"phm/internal/config"
	"phm/internal/lib/setup"
	"phm/internal/lib/sl"
	"phm/internal/medical"
	"phm/internal/server"
	"phm/internal/service"
	"syscall"
	"time"
)

func main() {
	cfg := config.NewServerConfig()
	setup.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	db := setup.ConnectToDatabase(cfg.DbDriver)
	defer db.Close()

	// without the broker sender the server runs standalone and refuses readings
	var readings server.ReadingPublisher
	var publisher alert.AlertPublisher
	if cfg.Sender == config.AlertSenderBroker {
		broker := setup.ConnectToRabbitMQ(config.NewRabbitMQConfig())
		defer broker.Close()
		readings, publisher = broker, broker
	}

	patientsService := service.NewPatientsService(db.PatientsRepo(), cfg.CommonConfig)
	alerts := setup.AlertSender(cfg.AlertConfig, cfg.CommonConfig, publisher)
	medicalService := medical.New(patientsService, alerts)

	srv := server.New(patientsService, medicalService, readings, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting http server", slog.String("address", cfg.Address))
		if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error from http server", sl.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown http server", sl.Error(err))
	}
}
