package repository

import (
	"context"
	"errors"
	"phm/internal/model"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientsProvider interface {
	AddPatient(ctx context.Context, patient model.PatientInfo) error
	DeletePatientById(ctx context.Context, id string) error

	// GetById returns ErrPatientNotFound when no patient has the given id.
	GetById(ctx context.Context, id string) (model.PatientInfo, error)
	GetAllPatients(ctx context.Context) ([]model.PatientInfo, error)
}
