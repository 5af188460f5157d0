// Package alert delivers alert messages produced by the medical checks.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"phm/internal/lib/sl"
	"phm/internal/model"
	"time"
)

type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert model.Alert) error
}

// BrokerSender hands alerts to the broker; the telegram bot delivers
// them to subscribers.
type BrokerSender struct {
	publisher AlertPublisher
	timeout   time.Duration
	now       func() time.Time
}

func NewBrokerSender(publisher AlertPublisher, timeout time.Duration) *BrokerSender {
	return &BrokerSender{
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (b *BrokerSender) Send(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	alert := model.Alert{
		Message: message,
		Time:    b.now().UTC(),
	}
	slog.Info("publishing alert", sl.Alert(alert))
	if err := b.publisher.PublishAlert(ctx, alert); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}

type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (l *LogSender) Send(ctx context.Context, message string) error {
	l.logger.WarnContext(ctx, "patient alert", slog.String("message", message))
	return nil
}
