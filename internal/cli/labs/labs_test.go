package labs

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func TestLabListCmd(t *testing.T) {
	ctx := setupTestDB(t)
	for _, cmd := range []*LabListCmd{{}, {JSON: true}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("lab list failed: %v", err)
		}
	}

	store, err := ctx.Appointments()
	if err != nil {
		t.Fatal(err)
	}
	if n := len(store.Catalog().Labs()); n != 3 {
		t.Errorf("expected the 3 seeded labs, got %d", n)
	}
}

func TestSlotsCmd(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []struct {
		name    string
		cmd     SlotsCmd
		wantErr bool
	}{
		{name: "all slots", cmd: SlotsCmd{}},
		{name: "patient day", cmd: SlotsCmd{Date: "2026-02-23", PatientID: "PAC001"}},
		{name: "today", cmd: SlotsCmd{Date: "today", PatientID: "PAC001"}},
		{name: "date without patient", cmd: SlotsCmd{Date: "2026-02-23"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
