package storage

import (
	"errors"

	"github.com/julianstephens/labcita/internal/models"
)

// ErrNotFound is returned when the requested row or key does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Catalog
	GetLabs() ([]models.Lab, error)
	GetExams() ([]models.Exam, error)

	// Appointments
	AddAppointment(models.Appointment) error
	// UpdateAppointment overwrites an existing appointment. It returns
	// ErrNotFound if no appointment has the given id.
	UpdateAppointment(models.Appointment) error
	GetAppointment(id string) (models.Appointment, error)
	// GetAllAppointments returns every appointment in creation order.
	GetAllAppointments() ([]models.Appointment, error)

	// Session key/value
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error

	// Utils
	GetConfigPath() string
}
