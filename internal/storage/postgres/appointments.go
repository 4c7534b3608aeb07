package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/storage"
)

const appointmentColumns = `id, patient_name, patient_id, lab, exams, date, time, status, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var a models.Appointment
	var exams, status string
	if err := row.Scan(
		&a.ID, &a.PatientName, &a.PatientID, &a.Lab, &exams, &a.Date, &a.Time,
		&status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return models.Appointment{}, err
	}
	a.Status = models.Status(status)
	if err := json.Unmarshal([]byte(exams), &a.Exams); err != nil {
		return models.Appointment{}, fmt.Errorf("failed to decode exams of appointment %s: %w", a.ID, err)
	}
	return a, nil
}

func (s *Store) AddAppointment(a models.Appointment) error {
	exams, err := json.Marshal(nonNil(a.Exams))
	if err != nil {
		return fmt.Errorf("failed to encode exams: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.PatientName, a.PatientID, a.Lab, string(exams), a.Date, a.Time,
		string(a.Status), a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (s *Store) UpdateAppointment(a models.Appointment) error {
	exams, err := json.Marshal(nonNil(a.Exams))
	if err != nil {
		return fmt.Errorf("failed to encode exams: %w", err)
	}
	res, err := s.db.Exec(`
		UPDATE appointments
		SET patient_name = $1, patient_id = $2, lab = $3, exams = $4, date = $5, time = $6,
		    status = $7, notes = $8, updated_at = $9
		WHERE id = $10`,
		a.PatientName, a.PatientID, a.Lab, string(exams), a.Date, a.Time,
		string(a.Status), a.Notes, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: appointment %s", storage.ErrNotFound, a.ID)
	}
	return nil
}

func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	row := s.db.QueryRow(`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, fmt.Errorf("%w: appointment %s", storage.ErrNotFound, id)
	}
	return a, err
}

func (s *Store) GetAllAppointments() ([]models.Appointment, error) {
	rows, err := s.db.Query(`SELECT ` + appointmentColumns + ` FROM appointments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func nonNil(exams []string) []string {
	if exams == nil {
		return []string{}
	}
	return exams
}
