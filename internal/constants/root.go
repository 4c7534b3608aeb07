package constants

import tea "github.com/charmbracelet/bubbletea"

// ConflictType represents the type of data validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "labcita"
	DefaultKeyringUser = "database-connection"
	AdminKeyringPrefix = "lab-admin:"
	DefaultConfigPath  = "~/.config/labcita/labcita.db"
	Version            = "v0.1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "labcita-"
	BackupFileSuffix = ".db"

	// Conflict Types
	ConflictDuplicateSlot  ConflictType = "duplicate_slot"
	ConflictInvalidDate    ConflictType = "invalid_date"
	ConflictInvalidTime    ConflictType = "invalid_time"
	ConflictEmptyExams     ConflictType = "empty_exams"
	ConflictUnknownLab     ConflictType = "unknown_lab"
	ConflictExamNotOffered ConflictType = "exam_not_offered"
	ConflictUnknownStatus  ConflictType = "unknown_status"
	ConflictMissingPatient ConflictType = "missing_patient"
)

// Session States
const (
	StateAppointments SessionState = iota
	StateLabs
	StateEditing
	StateSearch
	StateConfirmCancel
)
