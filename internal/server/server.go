package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"phm/internal/config"
	"phm/internal/lib/sl"
	"phm/internal/medical"
	"phm/internal/model"
	"phm/internal/repository"
	"phm/internal/server/middleware"
	"phm/internal/server/request"
	"phm/internal/server/response"
	"phm/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// ReadingPublisher may be nil when the server runs without a broker;
// readings are then refused.
type ReadingPublisher interface {
	PublishReading(ctx context.Context, reading model.Reading) error
}

type Server struct {
	server   *http.Server
	patients *service.PatientsService
	medical  *medical.MedicalService
	readings ReadingPublisher
	config   config.ServerConfig
}

func New(
	patients *service.PatientsService,
	medicalService *medical.MedicalService,
	readings ReadingPublisher,
	config config.ServerConfig,
) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Addr:              config.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		patients: patients,
		medical:  medicalService,
		readings: readings,
		config:   config,
	}

	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Logging)

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/patients", func(r chi.Router) {
		r.Get("/", s.getPatients)
		r.Post("/", s.addPatient)
		r.Get("/{id}", s.getPatient)
		r.Delete("/{id}", s.deletePatient)
		r.Post("/{id}/pressure", s.checkBloodPressure)
		r.Post("/{id}/temperature", s.checkTemperature)
	})
	router.Post("/readings", s.addReading)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := s.patients.GetAllPatients(r.Context())
	if err != nil {
		slog.Error("failed to get all patients", sl.Error(err))
		response.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	if patients == nil {
		patients = []model.PatientInfo{}
	}
	response.WriteJSON(w, http.StatusOK, patients)
}

func (s *Server) getPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	patient, err := s.patients.GetById(r.Context(), id)
	if errors.Is(err, repository.ErrPatientNotFound) {
		response.WriteError(w, http.StatusNotFound, fmt.Errorf("no patient with such id"))
		return
	} else if err != nil {
		slog.Error("failed to get patient by id", slog.String("id", id), sl.Error(err))
		response.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, patient)
}

type addPatientRequest struct {
	Name       string            `json:"name"`
	Surname    string            `json:"surname"`
	Birthday   string            `json:"birthday"` // YYYY-MM-DD
	HealthInfo *model.HealthInfo `json:"health_info"`
}

func (s *Server) addPatient(w http.ResponseWriter, r *http.Request) {
	var req addPatientRequest
	if err := request.ReadJSON(r, &req); err != nil {
		slog.Error("invalid patient", sl.Error(err))
		response.WriteError(w, http.StatusBadRequest, fmt.Errorf("invalid patient"))
		return
	}

	birthday, err := time.Parse(time.DateOnly, req.Birthday)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, fmt.Errorf("birthday must be YYYY-MM-DD"))
		return
	}

	patient, err := s.patients.AddPatient(r.Context(), service.CreatePatientInput{
		Name:       req.Name,
		Surname:    req.Surname,
		Birthday:   birthday,
		HealthInfo: req.HealthInfo,
	})
	if errors.Is(err, service.ErrInvalidInput) {
		response.WriteError(w, http.StatusBadRequest, err)
		return
	} else if err != nil {
		slog.Error("failed to add patient", sl.Error(err))
		response.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("patient added", sl.Patient(patient))
	response.WriteJSON(w, http.StatusCreated, patient)
}

func (s *Server) deletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.patients.DeletePatientById(r.Context(), id)
	if errors.Is(err, repository.ErrPatientNotFound) {
		response.WriteError(w, http.StatusNotFound, fmt.Errorf("no patient with such id"))
		return
	} else if err != nil {
		slog.Error("failed to delete patient by id", slog.String("id", id), sl.Error(err))
		response.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	response.WriteStatus(w, http.StatusNoContent)
}

type checkResponse struct {
	Alert bool `json:"alert"`
}

func (s *Server) checkBloodPressure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var pressure model.BloodPressure
	if err := request.ReadJSON(r, &pressure); err != nil {
		slog.Error("invalid blood pressure", sl.Error(err))
		response.WriteError(w, http.StatusBadRequest, fmt.Errorf("invalid blood pressure"))
		return
	}

	deviates, err := s.medical.CheckBloodPressure(r.Context(), id, pressure)
	if err != nil {
		writeCheckError(w, id, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, checkResponse{Alert: deviates})
}

type temperatureRequest struct {
	Temperature decimal.NullDecimal `json:"temperature"`
}

func (s *Server) checkTemperature(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req temperatureRequest
	if err := request.ReadJSON(r, &req); err != nil || !req.Temperature.Valid {
		response.WriteError(w, http.StatusBadRequest, fmt.Errorf("invalid temperature"))
		return
	}

	deviates, err := s.medical.CheckTemperature(r.Context(), id, req.Temperature.Decimal)
	if err != nil {
		writeCheckError(w, id, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, checkResponse{Alert: deviates})
}

func writeCheckError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, repository.ErrPatientNotFound):
		response.WriteError(w, http.StatusNotFound, fmt.Errorf("no patient with such id"))
	case errors.Is(err, medical.ErrNoBaseline):
		response.WriteError(w, http.StatusUnprocessableEntity, err)
	default:
		slog.Error("failed to check patient", slog.String("id", id), sl.Error(err))
		response.WriteError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) addReading(w http.ResponseWriter, r *http.Request) {
	if s.readings == nil {
		response.WriteError(w, http.StatusServiceUnavailable, fmt.Errorf("readings queue is not configured"))
		return
	}

	var reading model.Reading
	if err := request.ReadJSON(r, &reading); err != nil {
		slog.Error("invalid reading", sl.Error(err))
		response.WriteError(w, http.StatusBadRequest, fmt.Errorf("invalid reading"))
		return
	}
	if reading.PatientId == "" || reading.IsEmpty() {
		response.WriteError(w, http.StatusBadRequest, fmt.Errorf("reading needs a patient id and a vital"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.BrokerTimeout)
	defer cancel()

	if err := s.readings.PublishReading(ctx, reading); err != nil {
		slog.Error("failed to publish reading", sl.Reading(reading), sl.Error(err))
		response.WriteError(w, http.StatusServiceUnavailable, fmt.Errorf("failed to enqueue reading"))
		return
	}

	response.WriteStatus(w, http.StatusAccepted)
}
