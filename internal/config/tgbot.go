package config

import "time"

type TelegramBotConfig struct {
	Token       string
	PollTimeout time.Duration
	CommonConfig
}

// NewTelegramBotConfig reads the bot token only from a secret file.
func NewTelegramBotConfig() TelegramBotConfig {
	return TelegramBotConfig{
		Token:        getEnvFromFile("TELEGRAM_TOKEN_FILE", ""),
		PollTimeout:  getEnvAsDuration("TELEGRAM_POLL_TIMEOUT", 10*time.Second),
		CommonConfig: NewCommonConfig(),
	}
}
