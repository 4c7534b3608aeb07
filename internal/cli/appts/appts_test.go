package appts

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/session"
	"github.com/julianstephens/labcita/internal/storage/sqlite"
)

type memSecrets map[string]string

func (m memSecrets) Get(email string) (string, error) { return m[email], nil }
func (m memSecrets) Set(email, password string) error { m[email] = password; return nil }
func (m memSecrets) Delete(email string) error        { delete(m, email); return nil }

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return newContext(store), store
}

func newContext(store *sqlite.Store) *cli.Context {
	return &cli.Context{
		Store:   store,
		Secrets: memSecrets{},
		Clock:   func() time.Time { return time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func addCmd() *AddCmd {
	return &AddCmd{
		PatientName: "María García",
		PatientID:   "PAC001",
		Lab:         "Laboratorio Central",
		Exam:        []string{"Hemograma Completo", "Glucosa en Ayunas"},
		Date:        "2026-02-23",
		Time:        "08:00",
	}
}

func onlyAppointment(t *testing.T, ctx *cli.Context) models.Appointment {
	t.Helper()
	store, err := ctx.Appointments()
	if err != nil {
		t.Fatalf("failed to load appointments: %v", err)
	}
	list := store.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(list))
	}
	return list[0]
}

func TestAddCmd(t *testing.T) {
	ctx, store := setupTestDB(t)

	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	appt := onlyAppointment(t, ctx)
	if appt.Status != models.StatusPending || appt.Lab != "Laboratorio Central" {
		t.Errorf("unexpected appointment %+v", appt)
	}

	// A fresh context reads the record back from the database
	reloaded := onlyAppointment(t, newContext(store))
	if reloaded.ID != appt.ID {
		t.Errorf("expected persisted appointment %s, got %s", appt.ID, reloaded.ID)
	}
}

func TestAddCmdUsesDefaultLab(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := addCmd()
	cmd.Lab = ""
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if lab := onlyAppointment(t, ctx).Lab; lab != "Laboratorio Central" {
		t.Errorf("expected the default lab, got %s", lab)
	}
}

func TestAddCmdRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AddCmd)
		wantErr error
		title   string
	}{
		{name: "missing patient", mutate: func(c *AddCmd) { c.PatientName = "  " }, wantErr: appointments.ErrMissingFields, title: "Faltan datos"},
		{name: "past date", mutate: func(c *AddCmd) { c.Date = "2026-01-15" }, wantErr: appointments.ErrPastDate, title: "Fecha no válida"},
		{name: "lunch slot", mutate: func(c *AddCmd) { c.Time = "13:00" }, wantErr: appointments.ErrInvalidTime},
		{name: "unknown lab", mutate: func(c *AddCmd) { c.Lab = "lab9" }, wantErr: appointments.ErrUnknownLab},
		{name: "exam of another lab", mutate: func(c *AddCmd) { c.Exam = []string{"Urocultivo"} }, wantErr: appointments.ErrUnknownExam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			cmd := addCmd()
			tt.mutate(cmd)

			err := cmd.Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.title != "" && !strings.HasPrefix(err.Error(), tt.title) {
				t.Errorf("expected error to start with %q, got %q", tt.title, err.Error())
			}

			store, _ := ctx.Appointments()
			if len(store.List()) != 0 {
				t.Error("rejected add must not store anything")
			}
		})
	}
}

func TestAddCmdSlotConflict(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	again := addCmd()
	again.Exam = []string{"Perfil Lipídico"}
	err := again.Run(ctx)
	if !errors.Is(err, appointments.ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "Conflicto de horario") {
		t.Errorf("expected the conflict notice, got %q", err.Error())
	}
}

func TestStatusCommands(t *testing.T) {
	ctx, store := setupTestDB(t)
	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyAppointment(t, ctx).ID
	prefix := id[:shortIDLen]

	if err := (&CompleteCmd{ID: prefix}).Run(ctx); !errors.Is(err, appointments.ErrInvalidTransition) {
		t.Fatalf("completing a pending appointment should be rejected, got %v", err)
	}
	if err := (&ConfirmCmd{ID: prefix}).Run(ctx); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := (&CompleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := (&CancelCmd{ID: id, Yes: true}).Run(ctx); !errors.Is(err, appointments.ErrInvalidTransition) {
		t.Fatalf("cancelling a completed appointment should be rejected, got %v", err)
	}

	if status := onlyAppointment(t, newContext(store)).Status; status != models.StatusCompleted {
		t.Errorf("expected Completada in storage, got %s", status)
	}
}

func TestCancelCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyAppointment(t, ctx).ID

	if err := (&CancelCmd{ID: id, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if status := onlyAppointment(t, ctx).Status; status != models.StatusCancelled {
		t.Errorf("expected Cancelada, got %s", status)
	}

	// The cancelled booking still holds the slot
	if err := addCmd().Run(ctx); !errors.Is(err, appointments.ErrSlotConflict) {
		t.Errorf("expected ErrSlotConflict against the cancelled booking, got %v", err)
	}
}

func TestEditCmd(t *testing.T) {
	ctx, store := setupTestDB(t)
	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyAppointment(t, ctx).ID

	newTime := "09:30"
	if err := (&EditCmd{ID: id, Time: &newTime}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	appt := onlyAppointment(t, newContext(store))
	if appt.Time != "09:30" || len(appt.Exams) != 2 || appt.Status != models.StatusPending {
		t.Errorf("unexpected appointment after edit %+v", appt)
	}

	lab := "lab2"
	if err := (&EditCmd{ID: id, Lab: &lab}).Run(ctx); !errors.Is(err, appointments.ErrMissingFields) {
		t.Errorf("switching lab without exams should be rejected, got %v", err)
	}
	if err := (&EditCmd{ID: id, Lab: &lab, Exam: []string{"Urocultivo"}}).Run(ctx); err != nil {
		t.Fatalf("edit with new lab failed: %v", err)
	}
	if got := onlyAppointment(t, ctx).Lab; got != "Laboratorio Norte" {
		t.Errorf("expected Laboratorio Norte, got %s", got)
	}
}

func TestEditCmdRejectsTerminal(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyAppointment(t, ctx).ID
	if err := (&CancelCmd{ID: id, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	newTime := "10:00"
	if err := (&EditCmd{ID: id, Time: &newTime}).Run(ctx); !errors.Is(err, appointments.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestResolveID(t *testing.T) {
	store := appointments.NewStore(catalog.Default(), nil)
	store.Seed([]models.Appointment{{ID: "abc-1"}, {ID: "abc-2"}, {ID: "xyz-1"}})

	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{ref: "abc-1", want: "abc-1"},
		{ref: "xy", want: "xyz-1"},
		{ref: "abc", wantErr: true},
		{ref: "nope", wantErr: true},
		{ref: " ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveID(store, tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveID(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}

	if _, err := resolveID(store, "nope"); !errors.Is(err, appointments.ErrNotFound) {
		t.Errorf("unknown id should wrap ErrNotFound, got %v", err)
	}
}

func TestListAndShowCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := addCmd().Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyAppointment(t, ctx).ID

	for _, cmd := range []*ListCmd{
		{},
		{Search: "maría"},
		{Status: "confirmed", JSON: true},
		{ByDate: true, All: true},
	} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("list %+v failed: %v", cmd, err)
		}
	}
	if err := (&ListCmd{Status: "archived"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown status")
	}

	if err := (&ShowCmd{ID: id, JSON: true}).Run(ctx); err != nil {
		t.Errorf("show failed: %v", err)
	}
	if err := (&ShowCmd{ID: "missing"}).Run(ctx); !errors.Is(err, appointments.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCommandsRequireLogin(t *testing.T) {
	ctx, _ := setupTestDB(t)

	mgr, err := ctx.Session()
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	reg := models.Registration{
		Lab:              models.LabProfile{Name: "Laboratorio Central", Phone: "+51 1 555 0101", Email: "contacto@central.pe"},
		Exams:            []string{"Hemograma Completo"},
		Plan:             models.PlanSelection{PlanID: "profesional", Users: 5, LeaseMonths: 12, Admin: models.AdminAccount{Name: "Rosa", Email: "rosa@central.pe"}},
		PaymentCompleted: true,
		Status:           models.AccountActive,
	}
	if err := mgr.CompleteRegistration(reg, "secreto"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if err := addCmd().Run(ctx); !errors.Is(err, session.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := (&ListCmd{}).Run(ctx); !errors.Is(err, session.ErrNotLoggedIn) {
		t.Errorf("list should require login, got %v", err)
	}
	if err := (&ShowCmd{ID: "missing"}).Run(ctx); !errors.Is(err, session.ErrNotLoggedIn) {
		t.Errorf("show should require login, got %v", err)
	}

	if err := mgr.Login("rosa@central.pe", "secreto"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := addCmd().Run(ctx); err != nil {
		t.Errorf("add after login failed: %v", err)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list after login failed: %v", err)
	}
}
