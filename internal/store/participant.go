package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"appointment-planner-api/internal/model"
)

func (s *Store) CreateParticipant(ctx context.Context, p *model.Participant) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO participants (id, name, email, phone, color, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Email, p.Phone, p.Color, p.CreatedAt, p.UpdatedAt,
	)
	if uniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *Store) UpdateParticipant(ctx context.Context, p *model.Participant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE participants SET name=$1, email=$2, phone=$3, color=$4, updated_at=$5
		 WHERE id=$6`,
		p.Name, p.Email, p.Phone, p.Color, p.UpdatedAt, p.ID,
	)
	if uniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetParticipant(ctx context.Context, id string) (*model.Participant, error) {
	p := &model.Participant{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, color, created_at, updated_at
		 FROM participants WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Color, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, color, created_at, updated_at
		 FROM participants ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Color, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteParticipant removes the participant and, explicitly, every
// attachment referencing them. The attachments go first so none is ever
// orphaned even without relying on FK cascade.
func (s *Store) DeleteParticipant(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM appointment_participants WHERE participant_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// ParticipantByEmail implements the registry's uniqueness lookup. A miss is
// (nil, nil), matching the validation engine's contract.
func (s *Store) ParticipantByEmail(ctx context.Context, email string) (*model.Participant, error) {
	p := &model.Participant{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, color, created_at, updated_at
		 FROM participants WHERE email = $1`, email,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Color, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FilterParticipantIDs keeps only ids that exist in the registry. Unknown
// ids in a draft are silently dropped rather than rejected.
func (s *Store) FilterParticipantIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM participants WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ParticipantSchedule returns every appointment the participant is attached
// to, resolved through the attachment join. This is the conflict detector's
// read path.
func (s *Store) ParticipantSchedule(ctx context.Context, participantID string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.title, to_char(a.date,'YYYY-MM-DD'),
		        to_char(a.start_time,'HH24:MI'), to_char(a.end_time,'HH24:MI')
		 FROM appointments a
		 JOIN appointment_participants ap ON ap.appointment_id = a.id
		 WHERE ap.participant_id = $1
		 ORDER BY a.date, a.start_time`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.Title, &a.Date, &a.StartTime, &a.EndTime); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
