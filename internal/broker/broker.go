package broker

import (
	"context"
	"phm/internal/model"
)

type MessageBroker interface {
	ConsumeReadings(ctx context.Context) (<-chan model.Reading, error)
	ConsumeAlerts(ctx context.Context) (<-chan model.Alert, error)

	PublishReading(ctx context.Context, reading model.Reading) error
	PublishAlert(ctx context.Context, alert model.Alert) error

	Close()
}
