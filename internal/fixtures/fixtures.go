// Package fixtures seeds a demo user, participants and appointments so a
// fresh install has data to click through.
package fixtures

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"appointment-planner-api/internal/auth"
	"appointment-planner-api/internal/logger"
	"appointment-planner-api/internal/model"
	"appointment-planner-api/internal/schedule"
	"appointment-planner-api/internal/store"
)

const demoEmail = "user@gmail.com"

// Load is idempotent: it keys off the demo user and does nothing when the
// data is already there.
func Load(ctx context.Context, st *store.Store) error {
	if _, err := st.UserByEmail(ctx, demoEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        demoEmail,
		PasswordHash: hash,
		Name:         "Demo User",
	}
	if err := st.CreateUser(ctx, user); err != nil {
		return err
	}

	now := time.Now()
	participants := []model.Participant{
		{Name: "John Doe", Email: "john.doe@example.com", Phone: "+1234567890", Color: "#FF5733"},
		{Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "+1987654321", Color: "#33FF57"},
		{Name: "Bob Johnson", Email: "bob.johnson@example.com", Phone: "+1122334455", Color: "#3357FF"},
	}
	ids := make([]string, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := st.CreateParticipant(ctx, p); err != nil {
			return err
		}
		ids = append(ids, p.ID)
	}

	appointments := []model.Appointment{
		{
			Title: "Team Meeting", Location: "Conference Room A",
			Description: "Weekly team sync meeting", Color: "#FF5733",
			Date: day(now, 1), StartTime: "09:00", EndTime: "10:00",
		},
		{
			Title: "Project Review", Location: "Meeting Room B",
			Description: "Quarterly project review", Color: "#33FF57",
			Date: day(now, 2), StartTime: "14:00", EndTime: "15:30",
		},
		{
			Title: "Client Presentation", Location: "Virtual Meeting",
			Description: "Product demo for client", Color: "#3357FF",
			Date: day(now, 3), StartTime: "11:00", EndTime: "12:00",
		},
	}
	for i := range appointments {
		a := &appointments[i]
		a.ID = uuid.New().String()
		a.CreatedBy = user.ID
		a.CreatedAt = now
		a.UpdatedAt = now
		schedule.SetParticipants(a, ids, user.ID, now)
		if err := st.CreateAppointment(ctx, a); err != nil {
			return err
		}
	}

	logger.Info().Int("participants", len(participants)).Int("appointments", len(appointments)).Msg("demo data seeded")
	return nil
}

func day(from time.Time, offset int) string {
	return from.AddDate(0, 0, offset).Format("2006-01-02")
}
