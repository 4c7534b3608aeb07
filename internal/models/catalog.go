package models

// Lab is a laboratory that patients can be booked into
type Lab struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Exam is an exam offered by a specific lab
type Exam struct {
	LabID string `json:"lab_id"`
	Name  string `json:"name"`
}
