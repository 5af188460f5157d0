package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"phm/internal/lib/sl"
	"phm/internal/model"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	readingsQueue = "readings"
	alertsQueue   = "alerts"
)

var _ MessageBroker = &RabbitMQ{}

type RabbitMQ struct {
	wg        sync.WaitGroup
	conn      *amqp.Connection
	ch        *amqp.Channel
	readingsQ amqp.Queue
	alertsQ   amqp.Queue
	closed    chan struct{}
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = ch.Qos(
		1,     // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	readingsQ, err := declareQueue(ch, readingsQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare a readings queue: %w", err)
	}

	alertsQ, err := declareQueue(ch, alertsQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare an alerts queue: %w", err)
	}

	return &RabbitMQ{
		conn:      conn,
		ch:        ch,
		readingsQ: readingsQ,
		alertsQ:   alertsQ,
		closed:    make(chan struct{}),
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

func (r *RabbitMQ) ConsumeReadings(ctx context.Context) (<-chan model.Reading, error) {
	return consumeRoutine[model.Reading](r, ctx, r.readingsQ.Name)
}

func (r *RabbitMQ) ConsumeAlerts(ctx context.Context) (<-chan model.Alert, error) {
	return consumeRoutine[model.Alert](r, ctx, r.alertsQ.Name)
}

func consumeRoutine[T any](r *RabbitMQ, ctx context.Context, queue string) (<-chan T, error) {
	msgs, err := r.consumeMessages(ctx, queue)
	if err != nil {
		return nil, err
	}

	objects := make(chan T)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(objects)
		for msg := range msgs {
			var object T
			if err := json.Unmarshal(msg.Body, &object); err != nil {
				slog.Error("failed to parse message body", slog.String("queue", queue), sl.Error(err))
				continue
			}
			select {
			case <-r.closed:
				return
			case <-ctx.Done():
				return
			case objects <- object:
			}
		}
	}()

	return objects, nil
}

func (r *RabbitMQ) consumeMessages(
	ctx context.Context,
	queue string,
) (<-chan amqp.Delivery, error) {
	return r.ch.ConsumeWithContext(
		ctx,
		queue, // queue
		"",    // consumer
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
}

func (r *RabbitMQ) PublishReading(ctx context.Context, reading model.Reading) error {
	return publish(ctx, r, r.readingsQ.Name, reading)
}

func (r *RabbitMQ) PublishAlert(ctx context.Context, alert model.Alert) error {
	return publish(ctx, r, r.alertsQ.Name, alert)
}

func publish[T any](ctx context.Context, r *RabbitMQ, queue string, object T) error {
	body, err := json.Marshal(object)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s queue: %w", queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	return r.ch.PublishWithContext(ctx, "", queue, false, false, msg)
}

// Close closes the channel before waiting for consumers, which ends
// their delivery streams.
func (r *RabbitMQ) Close() {
	close(r.closed)
	r.ch.Close()
	r.wg.Wait()
	r.conn.Close()
}
