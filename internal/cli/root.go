package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/backup"
	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/keyring"
	"github.com/julianstephens/labcita/internal/logger"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/session"
	"github.com/julianstephens/labcita/internal/storage"
	"github.com/julianstephens/labcita/internal/storage/sqlite"
	"github.com/julianstephens/labcita/internal/utils"
)

// Context is passed to every command's Run method. Store is opened by the
// entrypoint; the appointment store and session are built on first use.
type Context struct {
	Store storage.Provider

	// Secrets holds admin passwords. Defaults to the OS keyring.
	Secrets session.Secrets
	// Clock overrides the current time. Defaults to time.Now.
	Clock func() time.Time

	appointments *appointments.Store
	session      *session.Manager
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Appointments returns the appointment store, loading the catalog and the
// stored appointments the first time it is called.
func (c *Context) Appointments() (*appointments.Store, error) {
	if c.appointments != nil {
		return c.appointments, nil
	}

	cat, err := catalog.Load(c.Store)
	if err != nil {
		return nil, err
	}
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}

	store := appointments.NewStore(cat, c.Store)
	store.SetClock(c.Clock, utils.LocationFromSettings(settings))
	if err := store.Load(); err != nil {
		return nil, err
	}
	c.appointments = store
	return store, nil
}

// Session returns the registration and login state.
func (c *Context) Session() (*session.Manager, error) {
	if c.session != nil {
		return c.session, nil
	}
	secrets := c.Secrets
	if secrets == nil {
		secrets = keyring.AdminPasswords{}
	}
	mgr := session.NewManager(c.Store, secrets)
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	c.session = mgr
	return mgr, nil
}

// RequireAccess fails unless the console is unregistered or an active admin
// is logged in.
func (c *Context) RequireAccess() error {
	mgr, err := c.Session()
	if err != nil {
		return err
	}
	return mgr.RequireAccess()
}

// DatabasePath returns the sqlite file path, or "" for other backends.
func (c *Context) DatabasePath() string {
	if _, ok := c.Store.(*sqlite.Store); ok {
		return c.Store.GetConfigPath()
	}
	return ""
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	dbPath := c.DatabasePath()
	if dbPath == "" {
		logger.Debug("Skipping automatic backup for non-file storage")
		return
	}
	mgr := backup.NewManager(dbPath)
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// Confirm reads a yes/no answer. Anything but y or yes is a no.
func Confirm(response string) bool {
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes" || response == "s" || response == "si" || response == "sí"
}
