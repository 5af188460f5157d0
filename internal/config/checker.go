package config

type CheckerConfig struct {
	Workers int
	AlertConfig
	CommonConfig
}

func NewCheckerConfig() CheckerConfig {
	return CheckerConfig{
		Workers:      getEnvAsInt("CHECKER_WORKERS", 16),
		AlertConfig:  NewAlertConfig(),
		CommonConfig: NewCommonConfig(),
	}
}
