package schedule_test

import (
	"context"
	"testing"

	"appointment-planner-api/internal/model"
	"appointment-planner-api/internal/schedule"
)

// fakeRegistry backs ScheduleSource and ParticipantSource in memory.
type fakeRegistry struct {
	schedules    map[string][]model.Appointment
	participants map[string]model.Participant // keyed by email
}

func (f *fakeRegistry) ParticipantSchedule(_ context.Context, participantID string) ([]model.Appointment, error) {
	return f.schedules[participantID], nil
}

func (f *fakeRegistry) ParticipantByEmail(_ context.Context, email string) (*model.Participant, error) {
	if p, ok := f.participants[email]; ok {
		return &p, nil
	}
	return nil, nil
}

func appt(id, date, start, end string) model.Appointment {
	return model.Appointment{ID: id, Title: "busy", Date: date, StartTime: start, EndTime: end}
}

func TestHasConflict(t *testing.T) {
	reg := &fakeRegistry{schedules: map[string][]model.Appointment{
		"p1": {appt("a1", "2024-01-10", "09:00", "10:00")},
		"p2": {appt("a2", "2024-01-10", "14:00", "15:00")},
		"p3": nil,
	}}
	det := schedule.NewDetector(reg)
	ctx := context.Background()

	tests := []struct {
		name         string
		candidate    model.Appointment
		participants []string
		want         bool
	}{
		{"overlapping slot", appt("new", "2024-01-10", "09:30", "10:30"), []string{"p1"}, true},
		{"back to back", appt("new", "2024-01-10", "10:00", "11:00"), []string{"p1"}, false},
		{"different date", appt("new", "2024-01-11", "09:00", "10:00"), []string{"p1"}, false},
		{"empty schedule", appt("new", "2024-01-10", "09:00", "10:00"), []string{"p3"}, false},
		{"no participants", appt("new", "2024-01-10", "09:00", "10:00"), nil, false},
		{"second participant conflicts", appt("new", "2024-01-10", "14:30", "15:30"), []string{"p3", "p2"}, true},
		{"each participant individually clear", appt("new", "2024-01-10", "11:00", "12:00"), []string{"p1", "p2", "p3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := det.HasConflict(ctx, &tt.candidate, tt.participants)
			if err != nil {
				t.Fatalf("HasConflict: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasConflict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflictSkipsSelf(t *testing.T) {
	// re-validating an unmodified appointment must not flag itself
	existing := appt("a1", "2024-01-10", "09:00", "10:00")
	reg := &fakeRegistry{schedules: map[string][]model.Appointment{"p1": {existing}}}
	det := schedule.NewDetector(reg)

	got, err := det.HasConflict(context.Background(), &existing, []string{"p1"})
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if got {
		t.Error("appointment conflicts with itself")
	}

	// but a different id in the same slot does conflict
	moved := appt("a9", "2024-01-10", "09:00", "10:00")
	got, err = det.HasConflict(context.Background(), &moved, []string{"p1"})
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if !got {
		t.Error("expected conflict for a different appointment in the same slot")
	}
}
