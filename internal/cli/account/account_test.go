package account

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/registration"
	"github.com/julianstephens/labcita/internal/session"
	"github.com/julianstephens/labcita/internal/storage/sqlite"
)

type memSecrets map[string]string

func (m memSecrets) Get(email string) (string, error) { return m[email], nil }
func (m memSecrets) Set(email, password string) error { m[email] = password; return nil }
func (m memSecrets) Delete(email string) error        { delete(m, email); return nil }

func setupTestDB(t *testing.T) (*cli.Context, memSecrets) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	secrets := memSecrets{}
	return &cli.Context{
		Store:   store,
		Secrets: secrets,
		Clock:   func() time.Time { return time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC) },
	}, secrets
}

// freshSession rereads the stored state the way a new process would.
func freshSession(t *testing.T, ctx *cli.Context) *session.Manager {
	t.Helper()
	next := &cli.Context{Store: ctx.Store, Secrets: ctx.Secrets}
	mgr, err := next.Session()
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return mgr
}

func registerCmd() *RegisterCmd {
	return &RegisterCmd{
		LabName:    "Laboratorio Central",
		Phone:      "+51 1 555 0101",
		Email:      "contacto@central.pe",
		Exam:       []string{"Hemograma Completo", "TSH"},
		Plan:       registration.DefaultPlanID,
		Users:      registration.DefaultUsers,
		Lease:      registration.DefaultLeaseMonths,
		AdminName:  "Rosa Quispe",
		AdminEmail: "rosa@central.pe",
		Password:   "secreto123",
	}
}

func TestRegister(t *testing.T) {
	ctx, secrets := setupTestDB(t)

	if err := registerCmd().Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	mgr := freshSession(t, ctx)
	reg, ok := mgr.Registration()
	if !ok {
		t.Fatal("registration was not stored")
	}
	if !mgr.IsActive() {
		t.Errorf("expected an active account, got %+v", reg)
	}
	if reg.LeaseExpiresAt != "2027-02-01T10:00:00Z" {
		t.Errorf("unexpected lease expiry %s", reg.LeaseExpiresAt)
	}
	if secrets["rosa@central.pe"] != "secreto123" {
		t.Error("admin password should be kept in the secret store")
	}
	if mgr.Auth().IsLoggedIn {
		t.Error("registering must not log in")
	}
}

func TestRegisterRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterCmd)
		wantErr error
	}{
		{name: "weak password", mutate: func(c *RegisterCmd) { c.Password = "corta" }, wantErr: ErrWeakPassword},
		{name: "no exams", mutate: func(c *RegisterCmd) { c.Exam = nil }, wantErr: registration.ErrIncomplete},
		{name: "missing admin", mutate: func(c *RegisterCmd) { c.AdminEmail = "" }, wantErr: registration.ErrIncomplete},
		{name: "unknown plan", mutate: func(c *RegisterCmd) { c.Plan = "gratis" }, wantErr: registration.ErrUnknownPlan},
		{name: "bad lease", mutate: func(c *RegisterCmd) { c.Lease = 2 }, wantErr: registration.ErrInvalidLease},
		{name: "plan limit", mutate: func(c *RegisterCmd) { c.Plan = "basico" }, wantErr: registration.ErrTooManyUsers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			cmd := registerCmd()
			tt.mutate(cmd)

			if err := cmd.Run(ctx); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if freshSession(t, ctx).IsRegistered() {
				t.Error("a rejected registration must not be stored")
			}
		})
	}
}

func TestRegisterTwice(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := registerCmd().Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := registerCmd().Run(ctx); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	again := registerCmd()
	again.LabName = "Laboratorio Norte"
	again.Force = true
	if err := again.Run(ctx); err != nil {
		t.Fatalf("register --force failed: %v", err)
	}
	reg, _ := freshSession(t, ctx).Registration()
	if reg.Lab.Name != "Laboratorio Norte" {
		t.Errorf("expected the registration to be replaced, got %q", reg.Lab.Name)
	}
}

func TestLoginLogout(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&LoginCmd{Email: "rosa@central.pe", Password: "secreto123"}).Run(ctx); !errors.Is(err, session.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered before registering, got %v", err)
	}

	if err := registerCmd().Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := (&LoginCmd{Email: "rosa@central.pe", Password: "incorrecta"}).Run(ctx); !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := (&LoginCmd{Email: "ROSA@central.pe", Password: "secreto123"}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	auth := freshSession(t, ctx).Auth()
	if !auth.IsLoggedIn || auth.UserName != "Rosa Quispe" {
		t.Errorf("unexpected session %+v", auth)
	}
	if err := ctx.RequireAccess(); err != nil {
		t.Errorf("logged-in admin should have access: %v", err)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if freshSession(t, ctx).Auth().IsLoggedIn {
		t.Error("session should be cleared after logout")
	}
	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Errorf("logout while logged out should be a no-op: %v", err)
	}
}

func TestInactiveAccountIsLocked(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := registerCmd().Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	mgr, err := ctx.Session()
	if err != nil {
		t.Fatal(err)
	}
	reg, _ := mgr.Registration()
	reg.Status = models.AccountSuspended
	if err := mgr.CompleteRegistration(reg, "secreto123"); err != nil {
		t.Fatal(err)
	}

	if err := (&LoginCmd{Email: "rosa@central.pe", Password: "secreto123"}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := ctx.RequireAccess(); !errors.Is(err, session.ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

func TestWhoami(t *testing.T) {
	ctx, _ := setupTestDB(t)

	for _, cmd := range []*WhoamiCmd{{}, {JSON: true}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("whoami (json=%v) failed before registering: %v", cmd.JSON, err)
		}
	}

	if err := registerCmd().Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	for _, cmd := range []*WhoamiCmd{{}, {JSON: true}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("whoami (json=%v) failed: %v", cmd.JSON, err)
		}
	}
}
