package sqlite

import (
	"github.com/julianstephens/labcita/internal/models"
)

func (s *Store) GetLabs() ([]models.Lab, error) {
	rows, err := s.db.Query("SELECT id, name FROM labs ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labs []models.Lab
	for rows.Next() {
		var l models.Lab
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		labs = append(labs, l)
	}
	return labs, rows.Err()
}

func (s *Store) GetExams() ([]models.Exam, error) {
	rows, err := s.db.Query("SELECT lab_id, name FROM exams ORDER BY lab_id, position, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(&e.LabID, &e.Name); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
