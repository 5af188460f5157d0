package config

type ServerConfig struct {
	Address string
	AlertConfig
	CommonConfig
}

func NewServerConfig() ServerConfig {
	return ServerConfig{
		Address:      getEnv("SERVER_ADDRESS", ":8080"),
		AlertConfig:  NewAlertConfig(),
		CommonConfig: NewCommonConfig(),
	}
}
