package appointments

import "github.com/julianstephens/labcita/internal/models"

// SampleAppointments returns the demo records used by `labcita init --sample`.
func SampleAppointments() []models.Appointment {
	return []models.Appointment{
		{
			ID:          "1",
			PatientName: "María García",
			PatientID:   "PAC001",
			Lab:         "Laboratorio Central",
			Exams:       []string{"Hemograma Completo", "Glucosa en Ayunas"},
			Date:        "2026-02-23",
			Time:        "08:00",
			Status:      models.StatusConfirmed,
		},
		{
			ID:          "2",
			PatientName: "Carlos López",
			PatientID:   "PAC002",
			Lab:         "Laboratorio Norte",
			Exams:       []string{"Prueba de Tiroides (TSH)"},
			Date:        "2026-02-24",
			Time:        "09:30",
			Status:      models.StatusPending,
			Notes:       "Paciente en ayunas 12 horas",
		},
		{
			ID:          "3",
			PatientName: "Ana Martínez",
			PatientID:   "PAC003",
			Lab:         "Laboratorio Sur",
			Exams:       []string{"Perfil Hepático", "Hemoglobina Glicosilada"},
			Date:        "2026-02-20",
			Time:        "10:00",
			Status:      models.StatusCompleted,
		},
	}
}
