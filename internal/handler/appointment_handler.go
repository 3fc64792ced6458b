package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appointment-planner-api/internal/logger"
	"appointment-planner-api/internal/metrics"
	"appointment-planner-api/internal/middleware"
	"appointment-planner-api/internal/schedule"
	"appointment-planner-api/internal/store"
)

type appointmentRequest struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Color        string   `json:"color"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Participants []string `json:"participants"`
}

func (b appointmentRequest) draft() schedule.AppointmentDraft {
	return schedule.AppointmentDraft{
		Title:          b.Title,
		Location:       b.Location,
		Description:    b.Description,
		Color:          b.Color,
		Date:           b.Date,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		ParticipantIDs: b.Participants,
	}
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	apts, err := h.store.ListAppointments(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("list appointments")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while retrieving appointments")
		return
	}

	out := make([]appointmentView, len(apts))
	for i := range apts {
		out[i] = toAppointmentView(&apts[i])
	}
	respondData(w, http.StatusOK, "Appointments retrieved successfully", out)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var body appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondInvalidJSON(w)
		return
	}

	draft := body.draft()
	// unknown participant ids are dropped, not rejected
	known, err := h.store.FilterParticipantIDs(r.Context(), draft.ParticipantIDs)
	if err != nil {
		logger.Error().Err(err).Msg("resolve participants")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while creating appointment")
		return
	}
	draft.ParticipantIDs = known

	apt, report, err := h.engine.StageAppointment(r.Context(), nil, draft, middleware.UserID(r.Context()))
	if err != nil {
		logger.Error().Err(err).Msg("stage appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while creating appointment")
		return
	}
	if !report.Ok() {
		if report.Conflict {
			metrics.ObserveConflict()
		}
		respondReport(w, report)
		return
	}

	if err := h.store.CreateAppointment(r.Context(), apt); err != nil {
		if errors.Is(err, store.ErrScheduleTaken) {
			// a concurrent commit won the slot after validation passed
			metrics.ObserveConflict()
			respondMessage(w, http.StatusConflict, schedule.ConflictMessage)
			return
		}
		logger.Error().Err(err).Msg("create appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while creating appointment")
		return
	}

	respondData(w, http.StatusCreated, "Appointment created successfully", toAppointmentView(apt))
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	apt, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("get appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while retrieving appointment")
		return
	}
	respondData(w, http.StatusOK, "Appointment retrieved successfully", toAppointmentView(apt))
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("load appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating appointment")
		return
	}

	var body appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondInvalidJSON(w)
		return
	}

	draft := body.draft()
	known, err := h.store.FilterParticipantIDs(r.Context(), draft.ParticipantIDs)
	if err != nil {
		logger.Error().Err(err).Msg("resolve participants")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating appointment")
		return
	}
	draft.ParticipantIDs = known

	apt, report, err := h.engine.StageAppointment(r.Context(), existing, draft, middleware.UserID(r.Context()))
	if err != nil {
		logger.Error().Err(err).Msg("stage appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating appointment")
		return
	}
	if !report.Ok() {
		if report.Conflict {
			metrics.ObserveConflict()
		}
		respondReport(w, report)
		return
	}

	if err := h.store.UpdateAppointment(r.Context(), apt); err != nil {
		if errors.Is(err, store.ErrScheduleTaken) {
			metrics.ObserveConflict()
			respondMessage(w, http.StatusConflict, schedule.ConflictMessage)
			return
		}
		logger.Error().Err(err).Msg("update appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating appointment")
		return
	}

	respondData(w, http.StatusOK, "Appointment updated successfully", toAppointmentView(apt))
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteAppointment(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("delete appointment")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while deleting appointment")
		return
	}
	respondMessage(w, http.StatusOK, "Appointment deleted successfully")
}
