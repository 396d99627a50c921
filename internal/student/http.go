package student

import (
	"errors"
	"log/slog"
	"net/http"

	"academic-service/internal/events"
	"academic-service/internal/httputil"
	"academic-service/internal/metrics"
	"academic-service/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service  Service
	validate *validation.Validator
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validation.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/students", func(r chi.Router) {
		r.Get("/", h.GetAllStudents)
		r.Post("/", h.CreateStudent)
		r.Get("/major-options", h.GetMajorOptions)
		r.Get("/statistics", h.GetStatistics)
		r.Get("/{id}", h.GetStudent)
		r.Put("/{id}", h.UpdateStudent)
		r.Delete("/{id}", h.DeleteStudent)
	})
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all students")

	students, err := h.service.GetAllStudents(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordViewed(r.Context(), events.EntityStudent)
	httputil.RespondWithJSON(w, http.StatusOK, students)
}

func (h *Handler) GetMajorOptions(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, map[string][]string{
		"options": h.service.MajorOptions(),
	})
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.logger.InfoContext(r.Context(), "fetching student by ID", "id", id)
	student, err := h.service.GetStudentByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordViewed(r.Context(), events.EntityStudent)
	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student Student
	if !httputil.DecodeAndValidate(w, r, h.validate, &student) {
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "email", student.Email, "major", student.Major)
	created, err := h.service.CreateStudent(r.Context(), &student)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordCreated(r.Context(), events.EntityStudent)
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var student Student
	if !httputil.DecodeAndValidate(w, r, h.validate, &student) {
		return
	}

	h.logger.InfoContext(r.Context(), "updating student", "id", id)
	updated, err := h.service.UpdateStudent(r.Context(), id, &student)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordUpdated(r.Context(), events.EntityStudent)
	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordDeleted(r.Context(), events.EntityStudent)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrStudentNotFound) {
		h.logger.InfoContext(r.Context(), "student not found")
		httputil.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}
	if errors.Is(err, ErrDuplicateNIM) {
		h.logger.InfoContext(r.Context(), "duplicate nim", "error", err)
		httputil.RespondWithError(w, http.StatusConflict, "Student with this NIM already exists")
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		h.logger.InfoContext(r.Context(), "invalid input", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
