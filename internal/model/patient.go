package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type BloodPressure struct {
	Upper int `json:"upper"`
	Lower int `json:"lower"`
}

var ErrIncompletePressure = errors.New("blood pressure needs both upper and lower")

// UnmarshalJSON rejects pressure with a missing component, which would
// otherwise decode as zero.
func (b *BloodPressure) UnmarshalJSON(data []byte) error {
	var raw struct {
		Upper *int `json:"upper"`
		Lower *int `json:"lower"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw.Upper == nil || raw.Lower == nil {
		return ErrIncompletePressure
	}

	b.Upper, b.Lower = *raw.Upper, *raw.Lower
	return nil
}

func (b BloodPressure) Equal(other BloodPressure) bool {
	return b.Upper == other.Upper && b.Lower == other.Lower
}

// HealthInfo is the patient's baseline. Either field may be absent;
// a check needs only the field it compares against.
type HealthInfo struct {
	NormalTemperature decimal.NullDecimal `json:"normal_temperature"`
	BloodPressure     *BloodPressure      `json:"blood_pressure,omitempty"`
}

type PatientInfo struct {
	Id         string      `json:"id"`
	Name       string      `json:"name"`
	Surname    string      `json:"surname"`
	Birthday   time.Time   `json:"birthday"`
	HealthInfo *HealthInfo `json:"health_info,omitempty"`
}

func (h *HealthInfo) IsEmpty() bool {
	return h == nil || (!h.NormalTemperature.Valid && h.BloodPressure == nil)
}
