// Package session keeps the lab registration and the local admin login.
// Both are stored as JSON under fixed keys of the storage key/value table;
// the admin password is kept in the OS keyring.
package session

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/logger"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/storage"
)

var (
	ErrNotRegistered      = errors.New("no lab is registered, run 'labcita register' first")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in, run 'labcita login' first")
	ErrAccountInactive    = errors.New("lab account is not active")
)

// KV is the key/value part of storage.Provider.
type KV interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

// Secrets stores admin passwords by email. keyring.AdminPasswords
// implements it.
type Secrets interface {
	Get(email string) (string, error)
	Set(email, password string) error
	Delete(email string) error
}

type Manager struct {
	kv           KV
	secrets      Secrets
	registration *models.Registration
	auth         models.AuthState
}

func NewManager(kv KV, secrets Secrets) *Manager {
	return &Manager{kv: kv, secrets: secrets}
}

// Load reads the registration and session records. Missing records leave
// the manager unregistered or logged out; unreadable ones are logged and
// ignored.
func (m *Manager) Load() error {
	m.registration = nil
	m.auth = models.AuthState{}

	var reg models.Registration
	found, err := m.read(constants.SessionKeyRegistration, &reg)
	if err != nil {
		return err
	}
	if found {
		m.registration = &reg
	}

	var auth models.AuthState
	found, err = m.read(constants.SessionKeyAuth, &auth)
	if err != nil {
		return err
	}
	if found {
		m.auth = auth
	}
	return nil
}

func (m *Manager) read(key string, dest interface{}) (bool, error) {
	raw, err := m.kv.GetValue(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warn("Ignoring unreadable session record", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (m *Manager) write(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := m.kv.SetValue(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Registration returns the stored registration, if any.
func (m *Manager) Registration() (models.Registration, bool) {
	if m.registration == nil {
		return models.Registration{}, false
	}
	return *m.registration, true
}

func (m *Manager) Auth() models.AuthState {
	return m.auth
}

func (m *Manager) IsRegistered() bool {
	return m.registration != nil
}

func (m *Manager) IsPaid() bool {
	return m.registration != nil && m.registration.PaymentCompleted
}

// IsActive reports a paid registration whose account status is active.
func (m *Manager) IsActive() bool {
	return m.IsPaid() && m.registration.Status == models.AccountActive
}

// CompleteRegistration stores reg and the admin password. Any previous
// login is dropped.
func (m *Manager) CompleteRegistration(reg models.Registration, password string) error {
	email := reg.Plan.Admin.Email
	if err := m.secrets.Set(email, password); err != nil {
		return fmt.Errorf("failed to store admin password: %w", err)
	}
	if err := m.write(constants.SessionKeyRegistration, reg); err != nil {
		_ = m.secrets.Delete(email)
		return err
	}

	if previous := m.registration; previous != nil && !strings.EqualFold(previous.Plan.Admin.Email, email) {
		_ = m.secrets.Delete(previous.Plan.Admin.Email)
	}
	m.registration = &reg
	logger.Info("Lab registered", "lab", reg.Lab.Name, "plan", reg.Plan.PlanID)
	return m.Logout()
}

// Login opens a session for the registered admin.
func (m *Manager) Login(email, password string) error {
	if m.registration == nil {
		return ErrNotRegistered
	}
	admin := m.registration.Plan.Admin
	if !strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(admin.Email)) {
		return ErrInvalidCredentials
	}

	stored, err := m.secrets.Get(admin.Email)
	if err != nil {
		return fmt.Errorf("failed to read admin password: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}

	auth := models.AuthState{IsLoggedIn: true, UserEmail: admin.Email, UserName: admin.Name}
	if err := m.write(constants.SessionKeyAuth, auth); err != nil {
		return err
	}
	m.auth = auth
	logger.Debug("Admin logged in", "email", admin.Email)
	return nil
}

func (m *Manager) Logout() error {
	if err := m.kv.DeleteValue(constants.SessionKeyAuth); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.auth = models.AuthState{}
	return nil
}

// RequireAccess gates the TUI. An unregistered console is open; once a lab
// is registered it needs an active account and a logged-in admin.
func (m *Manager) RequireAccess() error {
	if m.registration == nil {
		return nil
	}
	if !m.IsActive() {
		return fmt.Errorf("%w (status %s)", ErrAccountInactive, m.registration.Status)
	}
	if !m.auth.IsLoggedIn {
		return ErrNotLoggedIn
	}
	return nil
}
