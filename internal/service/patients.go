package service

import (
	"context"
	"errors"
	"fmt"
	"phm/internal/config"
	"phm/internal/model"
	"phm/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type PatientsService struct {
	patients repository.PatientsProvider
	config   config.CommonConfig
	newId    func() string
}

func NewPatientsService(
	patients repository.PatientsProvider,
	config config.CommonConfig,
) *PatientsService {
	return &PatientsService{
		patients: patients,
		config:   config,
		newId:    uuid.NewString,
	}
}

type CreatePatientInput struct {
	Name       string
	Surname    string
	Birthday   time.Time
	HealthInfo *model.HealthInfo
}

func (p *PatientsService) AddPatient(
	ctx context.Context,
	in CreatePatientInput,
) (model.PatientInfo, error) {
	name := strings.TrimSpace(in.Name)
	surname := strings.TrimSpace(in.Surname)
	if name == "" || surname == "" {
		return model.PatientInfo{}, fmt.Errorf("%w: name and surname are required", ErrInvalidInput)
	}
	if in.Birthday.IsZero() {
		return model.PatientInfo{}, fmt.Errorf("%w: birthday is required", ErrInvalidInput)
	}

	// a baseline without any field is stored as no baseline
	healthInfo := in.HealthInfo
	if healthInfo.IsEmpty() {
		healthInfo = nil
	}

	patient := model.PatientInfo{
		Id:         p.newId(),
		Name:       name,
		Surname:    surname,
		Birthday:   in.Birthday,
		HealthInfo: healthInfo,
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.DbQueryTimeout)
	defer cancel()

	if err := p.patients.AddPatient(ctx, patient); err != nil {
		return model.PatientInfo{}, err
	}
	return patient, nil
}

// GetById returns repository.ErrPatientNotFound for unknown ids.
func (p *PatientsService) GetById(ctx context.Context, id string) (model.PatientInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.DbQueryTimeout)
	defer cancel()

	return p.patients.GetById(ctx, id)
}

func (p *PatientsService) GetAllPatients(ctx context.Context) ([]model.PatientInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.DbQueryTimeout)
	defer cancel()

	return p.patients.GetAllPatients(ctx)
}

func (p *PatientsService) DeletePatientById(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, p.config.DbQueryTimeout)
	defer cancel()

	return p.patients.DeletePatientById(ctx, id)
}
