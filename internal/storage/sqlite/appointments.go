package sqlite

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

func encodeExams(exams []string) (string, error) {
	if exams == nil {
		exams = []string{}
	}
	data, err := json.Marshal(exams)
	if err != nil {
		return "", fmt.Errorf("failed to encode exams: %w", err)
	}
	return string(data), nil
}

func (s *Store) AddAppointment(a models.Appointment) error {
	exams, err := encodeExams(a.Exams)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PatientName, a.PatientID, a.Lab, exams, a.Date, a.Time,
		string(a.Status), a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// UpdateAppointment rewrites an existing row in place so its insertion
// order is kept.
func (s *Store) UpdateAppointment(a models.Appointment) error {
	exams, err := encodeExams(a.Exams)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE appointments
		SET patient_name = ?, patient_id = ?, lab = ?, exams = ?, date = ?, time = ?,
		    status = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		a.PatientName, a.PatientID, a.Lab, exams, a.Date, a.Time,
		string(a.Status), a.Notes, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: appointment %s", storage.ErrNotFound, a.ID)
	}
	return nil
}

func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	row := s.db.QueryRow(`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, fmt.Errorf("%w: appointment %s", storage.ErrNotFound, id)
	}
	return a, err
}

func (s *Store) GetAllAppointments() ([]models.Appointment, error) {
	rows, err := s.db.Query(`SELECT ` + appointmentColumns + ` FROM appointments ORDER BY rowid`)
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
