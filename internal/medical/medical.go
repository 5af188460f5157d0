// Package medical compares observed vital signs with a patient's baseline
// and raises an alert when they deviate.
package medical

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"phm/internal/lib/sl"
	"phm/internal/metrics"
	"phm/internal/model"

	"github.com/shopspring/decimal"
)

var ErrNoBaseline = errors.New("patient has no baseline for this vital")

var (
	// Readings below normal are tolerated further than readings above it.
	temperatureLowerTolerance = decimal.RequireFromString("-1.5")
	temperatureUpperTolerance = decimal.RequireFromString("1.0")
)

type PatientInfoRepository interface {
	GetById(ctx context.Context, id string) (model.PatientInfo, error)
}

type SendAlertService interface {
	Send(ctx context.Context, message string) error
}

type MedicalService struct {
	patients PatientInfoRepository
	alerts   SendAlertService
}

func New(patients PatientInfoRepository, alerts SendAlertService) *MedicalService {
	return &MedicalService{
		patients: patients,
		alerts:   alerts,
	}
}

// CheckBloodPressure reports whether the pressure deviates from the
// baseline and sends one alert if it does. Any difference, in either
// component and either direction, is a deviation.
func (m *MedicalService) CheckBloodPressure(
	ctx context.Context,
	patientId string,
	pressure model.BloodPressure,
) (bool, error) {
	patient, err := m.patients.GetById(ctx, patientId)
	if err != nil {
		return false, fmt.Errorf("failed to get patient: %w", err)
	}

	if patient.HealthInfo == nil || patient.HealthInfo.BloodPressure == nil {
		return false, fmt.Errorf("%w: blood pressure of patient %s", ErrNoBaseline, patientId)
	}

	if pressure.Equal(*patient.HealthInfo.BloodPressure) {
		metrics.ChecksTotal.WithLabelValues(metrics.VitalBloodPressure, metrics.OutcomeNormal).Inc()
		return false, nil
	}

	slog.Info(
		"blood pressure deviates from baseline",
		slog.String("patient_id", patientId),
		sl.BloodPressure("observed", pressure),
		sl.BloodPressure("baseline", *patient.HealthInfo.BloodPressure),
	)
	metrics.ChecksTotal.WithLabelValues(metrics.VitalBloodPressure, metrics.OutcomeDeviation).Inc()
	return true, m.sendAlert(ctx, patientId)
}

// CheckTemperature reports whether the temperature deviates from the
// baseline and sends one alert if it does. Differences within [-1.5, 1.0]
// are normal.
func (m *MedicalService) CheckTemperature(
	ctx context.Context,
	patientId string,
	temperature decimal.Decimal,
) (bool, error) {
	patient, err := m.patients.GetById(ctx, patientId)
	if err != nil {
		return false, fmt.Errorf("failed to get patient: %w", err)
	}

	if patient.HealthInfo == nil || !patient.HealthInfo.NormalTemperature.Valid {
		return false, fmt.Errorf("%w: temperature of patient %s", ErrNoBaseline, patientId)
	}

	normal := patient.HealthInfo.NormalTemperature.Decimal
	if !TemperatureDeviates(temperature, normal) {
		metrics.ChecksTotal.WithLabelValues(metrics.VitalTemperature, metrics.OutcomeNormal).Inc()
		return false, nil
	}

	slog.Info(
		"temperature deviates from baseline",
		slog.String("patient_id", patientId),
		slog.String("observed", temperature.String()),
		slog.String("baseline", normal.String()),
	)
	metrics.ChecksTotal.WithLabelValues(metrics.VitalTemperature, metrics.OutcomeDeviation).Inc()
	return true, m.sendAlert(ctx, patientId)
}

func TemperatureDeviates(observed, normal decimal.Decimal) bool {
	diff := observed.Sub(normal)
	return diff.LessThan(temperatureLowerTolerance) || diff.GreaterThan(temperatureUpperTolerance)
}

func AlertMessage(patientId string) string {
	return fmt.Sprintf("Warning, patient with id: %s, need help", patientId)
}

func (m *MedicalService) sendAlert(ctx context.Context, patientId string) error {
	if err := m.alerts.Send(ctx, AlertMessage(patientId)); err != nil {
		metrics.AlertFailuresTotal.Inc()
		return fmt.Errorf("failed to send alert: %w", err)
	}
	metrics.AlertsSentTotal.Inc()
	return nil
}
