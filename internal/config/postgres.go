package config

import "fmt"

type PostgresConfig struct {
	User string
	Pass string
	Host string
	Port string
	Db   string
}

func NewPostgresConfig() PostgresConfig {
	return PostgresConfig{
		User: getEnv("POSTGRES_USER", "postgres"),
		Pass: getEnvFromFile("POSTGRES_PASSWORD_FILE", "postgres"),
		Host: getEnv("POSTGRES_IP_ADDRESS", "postgres"),
		Port: getEnv("POSTGRES_PORT", "5432"),
		Db:   getEnv("POSTGRES_DB", "phm"),
	}
}

func (c PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.User, c.Pass, c.Host, c.Port, c.Db)
}
