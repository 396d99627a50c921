package classroom

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
	router.Route("/classes", func(r chi.Router) {
		r.Get("/", h.GetAllClasses)
		r.Post("/", h.CreateClass)
		r.Get("/{id}", h.GetClass)
		r.Put("/{id}", h.UpdateClass)
		r.Delete("/{id}", h.DeleteClass)
		r.Post("/{id}/students/{studentId}", h.AddStudent)
		r.Delete("/{id}/students/{studentId}", h.RemoveStudent)
	})
}

func (h *Handler) GetAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.GetAllClasses(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordViewed(r.Context(), events.EntityClass)
	httputil.RespondWithJSON(w, http.StatusOK, classes)
}

func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	class, err := h.service.GetClassByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordViewed(r.Context(), events.EntityClass)
	httputil.RespondWithJSON(w, http.StatusOK, class)
}

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var class ClassRoom
	if !httputil.DecodeAndValidate(w, r, h.validate, &class) {
		return
	}

	h.logger.InfoContext(r.Context(), "creating class", "name", class.Name, "subject", class.SubjectName)
	created, err := h.service.CreateClass(r.Context(), &class)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordCreated(r.Context(), events.EntityClass)
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var class ClassRoom
	if !httputil.DecodeAndValidate(w, r, h.validate, &class) {
		return
	}

	h.logger.InfoContext(r.Context(), "updating class", "id", id)
	updated, err := h.service.UpdateClass(r.Context(), id, &class)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordUpdated(r.Context(), events.EntityClass)
	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.logger.InfoContext(r.Context(), "deleting class", "id", id)
	if err := h.service.DeleteClass(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordDeleted(r.Context(), events.EntityClass)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "id")
	studentID := chi.URLParam(r, "studentId")

	h.logger.InfoContext(r.Context(), "adding student to class", "class_id", classID, "student_id", studentID)
	class, err := h.service.AddStudentToClass(r.Context(), classID, studentID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordUpdated(r.Context(), events.EntityClass)
	httputil.RespondWithJSON(w, http.StatusOK, class)
}

func (h *Handler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "id")
	studentID := chi.URLParam(r, "studentId")

	h.logger.InfoContext(r.Context(), "removing student from class", "class_id", classID, "student_id", studentID)
	class, err := h.service.RemoveStudentFromClass(r.Context(), classID, studentID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordUpdated(r.Context(), events.EntityClass)
	httputil.RespondWithJSON(w, http.StatusOK, class)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrClassNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Class not found")
	case errors.Is(err, ErrDuplicateCode):
		h.logger.InfoContext(r.Context(), "duplicate code", "error", err)
		httputil.RespondWithError(w, http.StatusConflict, "Class with this code already exists")
	case errors.Is(err, ErrInvalidInput):
		h.logger.InfoContext(r.Context(), "invalid input", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
