package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/storage"
	"github.com/julianstephens/labcita/internal/storage/postgres"
	"github.com/julianstephens/labcita/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Sample bool   `help:"Load demo appointments into an empty database."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized labcita storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}

	if c.Sample {
		n, err := seedSample(ctx.Store)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d sample appointments.\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.DatabasePath()
	if dbPath == "" {
		return errors.New("--force is only supported for SQLite storage")
	}

	// Don't delete if it's the source
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first so the file is not held open
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// sourceOpener is replaced in tests.
var sourceOpener = openSource

// openSource opens another labcita database for copying.
func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use PGPASSWORD or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	src, err := sourceOpener(source)
	if err != nil {
		return err
	}
	defer src.Close()
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying appointments...")
	appts, err := src.GetAllAppointments()
	if err != nil {
		return fmt.Errorf("failed to get appointments from source: %w", err)
	}
	copied := 0
	for _, appt := range appts {
		if _, err := ctx.Store.GetAppointment(appt.ID); err == nil {
			continue
		}
		if err := ctx.Store.AddAppointment(appt); err != nil {
			return fmt.Errorf("failed to add appointment %s: %w", appt.ID, err)
		}
		copied++
	}
	fmt.Printf("    Copied %d appointments\n", copied)

	fmt.Println("  Copying registration...")
	for _, key := range []string{constants.SessionKeyRegistration} {
		value, err := src.GetValue(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := ctx.Store.SetValue(key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}

// seedSample stores the demo appointments with fresh ids. A database that
// already has appointments is left alone.
func seedSample(store storage.Provider) (int, error) {
	existing, err := store.GetAllAppointments()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		fmt.Println("Database already has appointments, skipping sample data.")
		return 0, nil
	}

	sample := appointments.SampleAppointments()
	for _, appt := range sample {
		appt.ID = uuid.New().String()
		if err := store.AddAppointment(appt); err != nil {
			return 0, fmt.Errorf("failed to add sample appointment: %w", err)
		}
	}
	return len(sample), nil
}
