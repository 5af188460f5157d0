package repository

import (
	"database/sql"
	"phm/internal/model"

	"github.com/shopspring/decimal"
)

// Baseline is the nullable column form of model.HealthInfo shared by the
// SQL backends.
type Baseline struct {
	NormalTemperature decimal.NullDecimal
	PressureUpper     sql.NullInt64
	PressureLower     sql.NullInt64
}

func NewBaseline(info *model.HealthInfo) Baseline {
	var b Baseline
	if info == nil {
		return b
	}
	b.NormalTemperature = info.NormalTemperature
	if info.BloodPressure != nil {
		b.PressureUpper = sql.NullInt64{Int64: int64(info.BloodPressure.Upper), Valid: true}
		b.PressureLower = sql.NullInt64{Int64: int64(info.BloodPressure.Lower), Valid: true}
	}
	return b
}

// HealthInfo returns nil when no baseline column is set.
func (b Baseline) HealthInfo() *model.HealthInfo {
	hasPressure := b.PressureUpper.Valid && b.PressureLower.Valid
	if !b.NormalTemperature.Valid && !hasPressure {
		return nil
	}

	info := &model.HealthInfo{NormalTemperature: b.NormalTemperature}
	if hasPressure {
		info.BloodPressure = &model.BloodPressure{
			Upper: int(b.PressureUpper.Int64),
			Lower: int(b.PressureLower.Int64),
		}
	}
	return info
}
