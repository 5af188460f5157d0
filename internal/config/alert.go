package config

const (
	AlertSenderBroker = "broker"
	AlertSenderLog    = "log"
)

type AlertConfig struct {
	Sender string
}

func NewAlertConfig() AlertConfig {
	return AlertConfig{
		Sender: getEnv("ALERT_SENDER", AlertSenderBroker),
	}
}
