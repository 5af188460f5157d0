package main

import (
	"log/slog"
	"os"
	"phm/internal/config"
	"phm/internal/lib/setup"
	"phm/internal/lib/sl"
	"phm/internal/notifier/telegram"
	"phm/internal/service"
)

func main() {
	cfg := config.NewTelegramBotConfig()
	setup.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.Token == "" {
		slog.Error("telegram token is not found")
		os.Exit(1)
	}

	db := setup.ConnectToDatabase(cfg.DbDriver)
	defer db.Close()

	broker := setup.ConnectToRabbitMQ(config.NewRabbitMQConfig())
	defer broker.Close()

	chatsService := service.NewChatsService(db.ChatsRepo(), cfg.CommonConfig)

	tgbot, err := telegram.New(broker, chatsService, cfg)
	if err != nil {
		slog.Error("failed to create tg bot", sl.Error(err))
		os.Exit(1)
	}

	slog.Info("starting telegram bot")
	tgbot.Start()
}
