package schedule

import (
	"context"

	"appointment-planner-api/internal/model"
)

// ScheduleSource answers "which appointments is participant P attached to".
// The store implements it with the attachment join; tests use an in-memory
// map.
type ScheduleSource interface {
	ParticipantSchedule(ctx context.Context, participantID string) ([]model.Appointment, error)
}

// Detector decides whether a candidate appointment would double-book any of
// its participants.
type Detector struct {
	src ScheduleSource
}

func NewDetector(src ScheduleSource) *Detector {
	return &Detector{src: src}
}

// HasConflict walks every participant's existing schedule and tests each
// same-day appointment against the candidate's interval. The candidate's own
// id is skipped so re-validating an update never flags itself. Returns on
// the first hit.
func (d *Detector) HasConflict(ctx context.Context, candidate *model.Appointment, participantIDs []string) (bool, error) {
	iv, err := appointmentInterval(candidate)
	if err != nil {
		return false, err
	}

	for _, pid := range participantIDs {
		existing, err := d.src.ParticipantSchedule(ctx, pid)
		if err != nil {
			return false, err
		}
		for i := range existing {
			if existing[i].ID == candidate.ID {
				continue
			}
			other, err := appointmentInterval(&existing[i])
			if err != nil {
				return false, err
			}
			if iv.Overlaps(other) {
				return true, nil
			}
		}
	}
	return false, nil
}

func appointmentInterval(a *model.Appointment) (Interval, error) {
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(a.EndTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Date: a.Date, Start: start, End: end}, nil
}
