package model

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Participant is someone who can be attached to appointments. Identity is
// the email: two participants with the same email are the same entity.
type Participant struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appointment is a day-scoped booking. Date is a calendar day ("2006-01-02")
// and StartTime/EndTime are wall-clock values ("15:04") with no carried date,
// so an appointment never crosses midnight.
type Appointment struct {
	ID          string
	Title       string
	Location    string
	Description string
	Color       string
	Date        string
	StartTime   string
	EndTime     string
	CreatedBy   string
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ParticipantIDs returns the ids currently attached, in attachment order.
func (a *Appointment) ParticipantIDs() []string {
	ids := make([]string, 0, len(a.Attachments))
	for _, at := range a.Attachments {
		ids = append(ids, at.ParticipantID)
	}
	return ids
}

// Attachment joins one appointment to one participant. It cannot outlive
// either parent: removing an appointment or a participant removes its
// attachments.
type Attachment struct {
	ID            string
	AppointmentID string
	ParticipantID string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
