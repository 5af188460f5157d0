package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"phm/internal/model"
	"phm/internal/repository"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db}
}

func (r *PatientsRepo) AddPatient(ctx context.Context, patient model.PatientInfo) error {
	b := repository.NewBaseline(patient.HealthInfo)
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO patients
		(id, name, surname, birthday, normal_temperature, pressure_upper, pressure_lower)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		patient.Id,
		patient.Name,
		patient.Surname,
		patient.Birthday,
		b.NormalTemperature,
		b.PressureUpper,
		b.PressureLower,
	)
	return err
}

func (r *PatientsRepo) DeletePatientById(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", repository.ErrPatientNotFound, id)
	}
	return nil
}

func (r *PatientsRepo) GetById(ctx context.Context, id string) (model.PatientInfo, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, surname, birthday, normal_temperature, pressure_upper, pressure_lower
		FROM patients
		WHERE id = ?`,
		id,
	)

	patient, err := scanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PatientInfo{}, fmt.Errorf("%w: %s", repository.ErrPatientNotFound, id)
	}
	return patient, err
}

func (r *PatientsRepo) GetAllPatients(ctx context.Context) ([]model.PatientInfo, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, surname, birthday, normal_temperature, pressure_upper, pressure_lower
		FROM patients
		ORDER BY surname, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []model.PatientInfo
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPatient(s scanner) (model.PatientInfo, error) {
	var (
		patient model.PatientInfo
		b       repository.Baseline
	)
	err := s.Scan(
		&patient.Id,
		&patient.Name,
		&patient.Surname,
		&patient.Birthday,
		&b.NormalTemperature,
		&b.PressureUpper,
		&b.PressureLower,
	)
	if err != nil {
		return model.PatientInfo{}, err
	}
	patient.HealthInfo = b.HealthInfo()
	return patient, nil
}
