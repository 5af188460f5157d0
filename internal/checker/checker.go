package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"phm/internal/config"
	"phm/internal/lib/sl"
	"phm/internal/medical"
	"phm/internal/metrics"
	"phm/internal/model"
	"phm/internal/repository"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type ReadingConsumer interface {
	ConsumeReadings(ctx context.Context) (<-chan model.Reading, error)
}

// Checker runs the medical checks for readings taken from the broker.
type Checker struct {
	broker  ReadingConsumer
	medical *medical.MedicalService
	config  config.CheckerConfig
}

func New(
	broker ReadingConsumer,
	medicalService *medical.MedicalService,
	config config.CheckerConfig,
) *Checker {
	return &Checker{
		broker:  broker,
		medical: medicalService,
		config:  config,
	}
}

// Start runs the workers until a signal arrives. It returns nil on
// signal shutdown and the worker error otherwise.
func (c *Checker) Start() error {
	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *Checker) Run(ctx context.Context) error {
	readingsQueue, err := c.broker.ConsumeReadings(ctx)
	if err != nil {
		return fmt.Errorf("failed to register a consumer for readings: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	for range max(c.config.Workers, 1) {
		g.Go(func() error {
			return c.workerRoutine(ctx, readingsQueue)
		})
	}

	return g.Wait()
}

func (c *Checker) workerRoutine(ctx context.Context, readingsQueue <-chan model.Reading) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reading, ok := <-readingsQueue:
			if !ok {
				return fmt.Errorf("queue with readings was closed")
			}
			if err := c.checkReading(ctx, reading); err != nil {
				return fmt.Errorf("failed to check reading: %w", err)
			}
		}
	}
}

// checkReading skips readings for unknown patients or patients without
// the needed baseline; any other failure stops the worker.
func (c *Checker) checkReading(ctx context.Context, reading model.Reading) error {
	if reading.BloodPressure != nil {
		deviates, err := c.medical.CheckBloodPressure(ctx, reading.PatientId, *reading.BloodPressure)
		if err := c.handleResult(reading, "blood pressure", deviates, err); err != nil {
			return err
		}
	}

	if reading.Temperature.Valid {
		deviates, err := c.medical.CheckTemperature(ctx, reading.PatientId, reading.Temperature.Decimal)
		if err := c.handleResult(reading, "temperature", deviates, err); err != nil {
			return err
		}
	}

	return nil
}

func (c *Checker) handleResult(reading model.Reading, vital string, deviates bool, err error) error {
	switch {
	case errors.Is(err, repository.ErrPatientNotFound), errors.Is(err, medical.ErrNoBaseline):
		slog.Warn("skipping reading", slog.String("vital", vital), sl.Reading(reading), sl.Error(err))
		metrics.ReadingsConsumedTotal.WithLabelValues("skipped").Inc()
		return nil
	case err != nil:
		return err
	}

	slog.Info(
		"successful checking of reading",
		slog.String("vital", vital),
		slog.Bool("deviates", deviates),
		sl.Reading(reading),
	)
	metrics.ReadingsConsumedTotal.WithLabelValues("checked").Inc()
	return nil
}
