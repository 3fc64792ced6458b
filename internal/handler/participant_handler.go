package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appointment-planner-api/internal/logger"
	"appointment-planner-api/internal/schedule"
	"appointment-planner-api/internal/store"
)

type participantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Color string `json:"color"`
}

func (b participantRequest) draft() schedule.ParticipantDraft {
	return schedule.ParticipantDraft{Name: b.Name, Email: b.Email, Phone: b.Phone, Color: b.Color}
}

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ps, err := h.store.ListParticipants(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("list participants")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while retrieving participants")
		return
	}

	out := make([]participantView, len(ps))
	for i := range ps {
		out[i] = toParticipantView(&ps[i])
	}
	respondData(w, http.StatusOK, "Participants retrieved successfully", out)
}

func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var body participantRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondInvalidJSON(w)
		return
	}

	p, report, err := h.engine.StageParticipant(r.Context(), nil, body.draft())
	if err != nil {
		logger.Error().Err(err).Msg("stage participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while creating participant")
		return
	}
	if !report.Ok() {
		respondReport(w, report)
		return
	}

	if err := h.store.CreateParticipant(r.Context(), p); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondMessage(w, http.StatusConflict, "This participant is already exist.")
			return
		}
		logger.Error().Err(err).Msg("create participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while creating participant")
		return
	}

	respondData(w, http.StatusCreated, "Participant created successfully", toParticipantView(p))
}

func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetParticipant(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Participant not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("get participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while retrieving participant")
		return
	}
	respondData(w, http.StatusOK, "Participant retrieved successfully", toParticipantView(p))
}

func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	existing, err := h.store.GetParticipant(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Participant not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("load participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating participant")
		return
	}

	var body participantRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondInvalidJSON(w)
		return
	}

	p, report, err := h.engine.StageParticipant(r.Context(), existing, body.draft())
	if err != nil {
		logger.Error().Err(err).Msg("stage participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating participant")
		return
	}
	if !report.Ok() {
		respondReport(w, report)
		return
	}

	if err := h.store.UpdateParticipant(r.Context(), p); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondMessage(w, http.StatusConflict, "This participant is already exist.")
			return
		}
		logger.Error().Err(err).Msg("update participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while updating participant")
		return
	}

	respondData(w, http.StatusOK, "Participant updated successfully", toParticipantView(p))
}

func (h *Handler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteParticipant(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Participant not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("delete participant")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while deleting participant")
		return
	}
	respondMessage(w, http.StatusOK, "Participant deleted successfully")
}
