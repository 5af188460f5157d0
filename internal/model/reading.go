package model

import "github.com/shopspring/decimal"

// Reading is a single observation for one patient. At least one of the
// vitals is expected to be set.
type Reading struct {
	PatientId     string              `json:"patient_id"`
	Temperature   decimal.NullDecimal `json:"temperature"`
	BloodPressure *BloodPressure      `json:"blood_pressure,omitempty"`
}

func (r *Reading) IsEmpty() bool {
	return !r.Temperature.Valid && r.BloodPressure == nil
}
