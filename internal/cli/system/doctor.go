package system

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/labcita/internal/backup"
	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/instance"
	"github.com/julianstephens/labcita/internal/keyring"
	"github.com/julianstephens/labcita/internal/utils"
	"github.com/julianstephens/labcita/internal/validation"
)

// sqlStore is implemented by the SQL storage backends.
type sqlStore interface {
	GetDB() *sql.DB
	SchemaVersion() (current, latest int, err error)
}

// warning is a check result that is reported but does not fail the run.
type warning struct {
	msg string
}

func (w *warning) Error() string {
	return w.msg
}

type check struct {
	name    string
	needsDB bool
	run     func(*cli.Context) error
}

var doctorChecks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Lab catalog", needsDB: true, run: checkCatalog},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Registration", needsDB: true, run: checkRegistration},
	{name: "Backups present", run: checkBackupsPresent},
	{name: "Other instances", run: checkOtherInstances},
	{name: "OS keyring", run: checkKeyring},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var w *warning
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &w):
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %s\n", w.msg)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func warn(format string, args ...interface{}) error {
	return &warning{msg: fmt.Sprintf(format, args...)}
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(sqlStore); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	s, ok := ctx.Store.(sqlStore)
	if !ok {
		return nil
	}
	current, latest, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	s, ok := ctx.Store.(sqlStore)
	if !ok {
		return nil
	}
	current, latest, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'labcita migrate')", current, latest)
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	cat, err := catalog.Load(ctx.Store)
	if err != nil {
		return err
	}
	if len(cat.Labs()) == 0 {
		return fmt.Errorf("no labs in catalog")
	}
	for _, lab := range cat.Labs() {
		if len(cat.ExamsFor(lab.ID)) == 0 {
			return warn("lab %s (%s) offers no exams", lab.ID, lab.Name)
		}
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone setting: %s", settings.Timezone)
	}
	cat, err := catalog.Load(ctx.Store)
	if err != nil {
		return err
	}
	if _, ok := cat.Lab(settings.DefaultLabID); !ok {
		return warn("default lab %q is not in the catalog", settings.DefaultLabID)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	cat, err := catalog.Load(ctx.Store)
	if err != nil {
		return err
	}
	appts, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return fmt.Errorf("failed to get appointments: %w", err)
	}

	result := validation.New().ValidateAppointments(appts, cat)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkRegistration(ctx *cli.Context) error {
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}
	reg, ok := mgr.Registration()
	if !ok {
		return nil
	}
	if !mgr.IsActive() {
		return warn("lab %q is registered but not active (status %s)", reg.Lab.Name, reg.Status)
	}
	if reg.LeaseExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, reg.LeaseExpiresAt)
		if err != nil {
			return fmt.Errorf("invalid lease expiry %q: %w", reg.LeaseExpiresAt, err)
		}
		if expires.Before(time.Now()) {
			return warn("lease expired on %s", expires.Format("2006-01-02"))
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	dbPath := ctx.DatabasePath()
	if dbPath == "" {
		return nil
	}
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warn("no backups found - consider creating one with 'labcita backup create'")
	}
	return nil
}

func checkOtherInstances(ctx *cli.Context) error {
	pids, err := instance.Others()
	if err != nil {
		return warn("%v", err)
	}
	if len(pids) > 0 {
		return warn("%d other labcita process(es) running (pids %v); concurrent writes are not coordinated", len(pids), pids)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return warn("OS keyring is not available; lab admin login will not work")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
