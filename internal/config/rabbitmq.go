package config

import "fmt"

type RabbitMQConfig struct {
	User string
	Pass string
	Host string
	Port string
}

func NewRabbitMQConfig() RabbitMQConfig {
	return RabbitMQConfig{
		User: getEnv("RABBITMQ_DEFAULT_USER", "guest"),
		Pass: getEnvFromFile("RABBITMQ_DEFAULT_PASS_FILE", getEnv("RABBITMQ_DEFAULT_PASS", "guest")),
		Host: getEnv("RABBITMQ_NODE_IP_ADDRESS", "rabbitmq"),
		Port: getEnv("RABBITMQ_NODE_PORT", "5672"),
	}
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Pass, c.Host, c.Port)
}
