package subject

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
	router.Route("/subjects", func(r chi.Router) {
		r.Get("/", h.GetAllSubjects)
		r.Post("/", h.CreateSubject)
		r.Get("/{id}", h.GetSubject)
		r.Put("/{id}", h.UpdateSubject)
		r.Delete("/{id}", h.DeleteSubject)
	})
}

func (h *Handler) GetAllSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.GetAllSubjects(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordViewed(r.Context(), events.EntitySubject)
	httputil.RespondWithJSON(w, http.StatusOK, subjects)
}

func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	subject, err := h.service.GetSubjectByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordViewed(r.Context(), events.EntitySubject)
	httputil.RespondWithJSON(w, http.StatusOK, subject)
}

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var subject Subject
	if !httputil.DecodeAndValidate(w, r, h.validate, &subject) {
		return
	}

	h.logger.InfoContext(r.Context(), "creating subject", "name", subject.Name, "major", subject.Major)
	created, err := h.service.CreateSubject(r.Context(), &subject)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordCreated(r.Context(), events.EntitySubject)
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var subject Subject
	if !httputil.DecodeAndValidate(w, r, h.validate, &subject) {
		return
	}

	h.logger.InfoContext(r.Context(), "updating subject", "id", id)
	updated, err := h.service.UpdateSubject(r.Context(), id, &subject)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordUpdated(r.Context(), events.EntitySubject)
	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.logger.InfoContext(r.Context(), "deleting subject", "id", id)
	if err := h.service.DeleteSubject(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordDeleted(r.Context(), events.EntitySubject)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSubjectNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "Subject not found")
	case errors.Is(err, ErrDuplicateCode):
		h.logger.InfoContext(r.Context(), "duplicate code", "error", err)
		httputil.RespondWithError(w, http.StatusConflict, "Subject with this code already exists")
	case errors.Is(err, ErrInvalidInput):
		h.logger.InfoContext(r.Context(), "invalid input", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
