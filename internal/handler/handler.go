package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"appointment-planner-api/internal/model"
	"appointment-planner-api/internal/schedule"
	"appointment-planner-api/internal/store"
)

type Handler struct {
	store  *store.Store
	engine *schedule.Engine
	secret string
}

func New(st *store.Store, secret string) *Handler {
	return &Handler{
		store:  st,
		engine: schedule.NewEngine(st, st),
		secret: secret,
	}
}

func respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"message": message})
}

func respondData(w http.ResponseWriter, status int, message string, data any) {
	respond(w, status, map[string]any{"message": message, "data": data})
}

func respondInvalidJSON(w http.ResponseWriter) {
	respond(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
}

// respondReport translates a failed validation report. A scheduling conflict
// is a standalone failure; field errors come back as an itemized list.
func respondReport(w http.ResponseWriter, report schedule.Report) {
	if report.Conflict {
		respond(w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors":  schedule.ConflictMessage,
		})
		return
	}
	respond(w, http.StatusBadRequest, map[string]any{
		"message": "Validation failed",
		"errors":  report.Errors,
	})
}

type appointmentView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Color        string   `json:"color"`
	Date         string   `json:"date"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	CreatedBy    string   `json:"createdBy"`
	Participants []string `json:"participants"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toAppointmentView(a *model.Appointment) appointmentView {
	ids := a.ParticipantIDs()
	if ids == nil {
		ids = []string{}
	}
	return appointmentView{
		ID:           a.ID,
		Title:        a.Title,
		Location:     a.Location,
		Description:  a.Description,
		Color:        a.Color,
		Date:         a.Date,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		CreatedBy:    a.CreatedBy,
		Participants: ids,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

type participantView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toParticipantView(p *model.Participant) participantView {
	return participantView{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Color:     p.Color,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
