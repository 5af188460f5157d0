package sl

import (
	"log/slog"
	"phm/internal/model"
)

func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

func Patient(patient model.PatientInfo) slog.Attr {
	return slog.Group("patient",
		slog.String("id", patient.Id),
		slog.String("name", patient.Name),
		slog.String("surname", patient.Surname),
	)
}

func BloodPressure(key string, pressure model.BloodPressure) slog.Attr {
	return slog.Group(key,
		slog.Int("upper", pressure.Upper),
		slog.Int("lower", pressure.Lower),
	)
}

func Reading(reading model.Reading) slog.Attr {
	attrs := []any{slog.String("patient_id", reading.PatientId)}
	if reading.Temperature.Valid {
		attrs = append(attrs, slog.String("temperature", reading.Temperature.Decimal.String()))
	}
	if reading.BloodPressure != nil {
		attrs = append(attrs, BloodPressure("blood_pressure", *reading.BloodPressure))
	}
	return slog.Group("reading", attrs...)
}

func Alert(alert model.Alert) slog.Attr {
	return slog.Group("alert",
		slog.String("message", alert.Message),
		slog.Time("time", alert.Time),
	)
}
