package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"appointment-planner-api/internal/model"
)

// CreateAppointment commits a staged appointment and its attachments in one
// transaction. The participant rows are locked and the overlap check re-run
// inside the transaction, so two concurrent bookings for the same
// participant cannot both pass validation and both commit.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := guardSchedule(ctx, tx, a); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO appointments (id, title, location, description, color, date, start_time, end_time, created_by, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6::date,$7::time,$8::time,$9,$10,$11)`,
		a.ID, a.Title, a.Location, a.Description, a.Color, a.Date, a.StartTime, a.EndTime,
		a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if err := insertAttachments(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateAppointment rewrites the appointment row and replaces its attachment
// set, with the same transactional overlap guard as CreateAppointment.
func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := guardSchedule(ctx, tx, a); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE appointments
		 SET title=$1, location=$2, description=$3, color=$4,
		     date=$5::date, start_time=$6::time, end_time=$7::time, updated_at=$8
		 WHERE id=$9`,
		a.Title, a.Location, a.Description, a.Color, a.Date, a.StartTime, a.EndTime,
		a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	// full replace of the attachment set
	if _, err := tx.Exec(ctx,
		`DELETE FROM appointment_participants WHERE appointment_id = $1`, a.ID); err != nil {
		return err
	}
	if err := insertAttachments(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, location, description, color,
		        to_char(date,'YYYY-MM-DD'), to_char(start_time,'HH24:MI'), to_char(end_time,'HH24:MI'),
		        created_by, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Location, &a.Description, &a.Color,
		&a.Date, &a.StartTime, &a.EndTime, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, appointment_id, participant_id, created_by, created_at, updated_at
		 FROM appointment_participants WHERE appointment_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var at model.Attachment
		if err := rows.Scan(&at.ID, &at.AppointmentID, &at.ParticipantID, &at.CreatedBy, &at.CreatedAt, &at.UpdatedAt); err != nil {
			return nil, err
		}
		a.Attachments = append(a.Attachments, at)
	}
	return a, rows.Err()
}

func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, location, description, color,
		        to_char(date,'YYYY-MM-DD'), to_char(start_time,'HH24:MI'), to_char(end_time,'HH24:MI'),
		        created_by, created_at, updated_at
		 FROM appointments ORDER BY date, start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	index := map[string]int{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.Title, &a.Location, &a.Description, &a.Color,
			&a.Date, &a.StartTime, &a.EndTime, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	atRows, err := s.pool.Query(ctx,
		`SELECT id, appointment_id, participant_id, created_by, created_at, updated_at
		 FROM appointment_participants`)
	if err != nil {
		return nil, err
	}
	defer atRows.Close()

	for atRows.Next() {
		var at model.Attachment
		if err := atRows.Scan(&at.ID, &at.AppointmentID, &at.ParticipantID, &at.CreatedBy, &at.CreatedAt, &at.UpdatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[at.AppointmentID]; ok {
			out[i].Attachments = append(out[i].Attachments, at)
		}
	}
	return out, atRows.Err()
}

// DeleteAppointment removes the appointment and cascades to its attachments
// explicitly, attachments first.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM appointment_participants WHERE appointment_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// guardSchedule serializes the check-then-commit window. It locks the
// appointment's participant rows and re-runs the overlap predicate against
// the attachment join, excluding the appointment's own id. A hit means a
// concurrent commit won the slot.
func guardSchedule(ctx context.Context, tx pgx.Tx, a *model.Appointment) error {
	ids := a.ParticipantIDs()
	if len(ids) == 0 {
		return nil
	}

	rows, err := tx.Query(ctx,
		`SELECT id FROM participants WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return err
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM appointments ex
		   JOIN appointment_participants ap ON ap.appointment_id = ex.id
		   WHERE ap.participant_id = ANY($1)
		     AND ex.id <> $2
		     AND ex.date = $3::date
		     AND ex.start_time < $5::time
		     AND ex.end_time > $4::time)`,
		ids, a.ID, a.Date, a.StartTime, a.EndTime,
	).Scan(&taken)
	if err != nil {
		return err
	}
	if taken {
		return ErrScheduleTaken
	}
	return nil
}

func insertAttachments(ctx context.Context, tx pgx.Tx, a *model.Appointment) error {
	for _, at := range a.Attachments {
		_, err := tx.Exec(ctx,
			`INSERT INTO appointment_participants (id, appointment_id, participant_id, created_by, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			at.ID, at.AppointmentID, at.ParticipantID, at.CreatedBy, at.CreatedAt, at.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
