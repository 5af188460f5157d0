package config

type MigratorConfig struct {
	MigrationsFolder string
	CommonConfig
}

func NewMigratorConfig() MigratorConfig {
	common := NewCommonConfig()
	return MigratorConfig{
		MigrationsFolder: getEnv("MIGRATIONS_FOLDER", common.DbDriver),
		CommonConfig:     common,
	}
}
