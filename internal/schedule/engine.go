package schedule

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"appointment-planner-api/internal/model"
)

// Colors applied when a draft leaves the field empty.
const (
	DefaultAppointmentColor = "#6366F1"
	DefaultParticipantColor = "#ec4899"
)

// ParticipantSource resolves a participant by email for the uniqueness rule.
// A miss is reported as (nil, nil).
type ParticipantSource interface {
	ParticipantByEmail(ctx context.Context, email string) (*model.Participant, error)
}

// AppointmentDraft carries raw, unvalidated appointment fields.
type AppointmentDraft struct {
	Title          string
	Location       string
	Description    string
	Color          string
	Date           string
	StartTime      string
	EndTime        string
	ParticipantIDs []string
}

// ParticipantDraft carries raw, unvalidated participant fields.
type ParticipantDraft struct {
	Name  string
	Email string
	Phone string
	Color string
}

// Engine is the scheduling-conflict and consistency core. It is a pure
// decision layer: it reads the registry through its sources, never writes,
// and either hands back an aggregate ready to commit or a failed Report.
type Engine struct {
	detector     *Detector
	participants ParticipantSource
	now          func() time.Time
}

func NewEngine(schedules ScheduleSource, participants ParticipantSource) *Engine {
	return &Engine{
		detector:     NewDetector(schedules),
		participants: participants,
		now:          time.Now,
	}
}

// StageAppointment validates a draft against field rules and the conflict
// detector and, on success, returns the aggregate with its attachment set
// fully replaced. existing is nil for creates; for updates it is the prior
// state, whose id is excluded from the conflict scan. actorID stamps
// CreatedBy on new entities and on every rebuilt attachment.
//
// The conflict check runs before field errors are collected and fails the
// whole request on its own; field failures are then gathered together. A
// draft whose date or times do not parse skips the conflict scan and reports
// the field errors alone.
func (e *Engine) StageAppointment(ctx context.Context, existing *model.Appointment, draft AppointmentDraft, actorID string) (*model.Appointment, Report, error) {
	now := e.now()

	apt := &model.Appointment{}
	if existing != nil {
		*apt = *existing
	} else {
		apt.ID = uuid.New().String()
		apt.CreatedBy = actorID
		apt.CreatedAt = now
	}
	applyAppointmentFields(apt, draft)

	var report Report

	// conflict first, standalone, only when the interval is parseable
	if intervalComplete(draft) {
		conflict, err := e.detector.HasConflict(ctx, apt, uniqueIDs(draft.ParticipantIDs))
		if err != nil {
			return nil, Report{}, err
		}
		if conflict {
			report.Conflict = true
			return nil, report, nil
		}
	}

	if draft.Title == "" {
		report.add(FieldRequired, "title", "This value should not be blank.")
	}
	checkDateField(&report, "date", draft.Date)
	checkClockField(&report, "startTime", draft.StartTime)
	checkClockField(&report, "endTime", draft.EndTime)
	if start, err := ParseClock(draft.StartTime); err == nil {
		if end, err := ParseClock(draft.EndTime); err == nil && start >= end {
			report.add(FieldInvalid, "endTime", "End time must be after start time")
		}
	}
	if !report.Ok() {
		return nil, report, nil
	}

	SetParticipants(apt, draft.ParticipantIDs, actorID, now)
	apt.UpdatedAt = now
	return apt, report, nil
}

// StageParticipant validates a draft and returns the participant ready to
// commit. Email uniqueness is checked against the registry; matching the
// aggregate's own id is not a duplicate.
func (e *Engine) StageParticipant(ctx context.Context, existing *model.Participant, draft ParticipantDraft) (*model.Participant, Report, error) {
	now := e.now()

	p := &model.Participant{}
	if existing != nil {
		*p = *existing
	} else {
		p.ID = uuid.New().String()
		p.CreatedAt = now
	}
	applyParticipantFields(p, draft)

	var report Report
	if draft.Name == "" {
		report.add(FieldRequired, "name", "This value should not be blank.")
	}
	switch {
	case draft.Email == "":
		report.add(FieldRequired, "email", "This value should not be blank.")
	case !validEmail(draft.Email):
		report.add(FieldInvalid, "email", "This value is not a valid email address.")
	default:
		other, err := e.participants.ParticipantByEmail(ctx, draft.Email)
		if err != nil {
			return nil, Report{}, err
		}
		if other != nil && other.ID != p.ID {
			report.add(DuplicateEmail, "email", "This participant is already exist.")
		}
	}
	if !report.Ok() {
		return nil, report, nil
	}

	p.UpdatedAt = now
	return p, report, nil
}

// applyAppointmentFields copies the raw fields onto the aggregate, defaulting
// the display color when absent.
func applyAppointmentFields(a *model.Appointment, d AppointmentDraft) {
	a.Title = d.Title
	a.Location = d.Location
	a.Description = d.Description
	a.Date = d.Date
	a.StartTime = d.StartTime
	a.EndTime = d.EndTime
	a.Color = d.Color
	if a.Color == "" {
		a.Color = DefaultAppointmentColor
	}
}

func applyParticipantFields(p *model.Participant, d ParticipantDraft) {
	p.Name = d.Name
	p.Email = d.Email
	p.Phone = d.Phone
	p.Color = d.Color
	if p.Color == "" {
		p.Color = DefaultParticipantColor
	}
}

// SetParticipants replaces the entire attachment set: one fresh attachment
// per unique id, order-independent, duplicates collapsed. Partial updates
// are not supported.
func SetParticipants(a *model.Appointment, participantIDs []string, actorID string, now time.Time) {
	ids := uniqueIDs(participantIDs)
	attachments := make([]model.Attachment, 0, len(ids))
	for _, pid := range ids {
		attachments = append(attachments, model.Attachment{
			ID:            uuid.New().String(),
			AppointmentID: a.ID,
			ParticipantID: pid,
			CreatedBy:     actorID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	a.Attachments = attachments
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func intervalComplete(d AppointmentDraft) bool {
	if _, err := ParseDate(d.Date); err != nil {
		return false
	}
	if _, err := ParseClock(d.StartTime); err != nil {
		return false
	}
	if _, err := ParseClock(d.EndTime); err != nil {
		return false
	}
	return true
}

func checkDateField(r *Report, field, value string) {
	if value == "" {
		r.add(FieldRequired, field, "This value should not be blank.")
		return
	}
	if _, err := ParseDate(value); err != nil {
		r.add(FieldInvalid, field, "This value is not valid.")
	}
}

func checkClockField(r *Report, field, value string) {
	if value == "" {
		r.add(FieldRequired, field, "This value should not be blank.")
		return
	}
	if _, err := ParseClock(value); err != nil {
		r.add(FieldInvalid, field, "This value is not valid.")
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
