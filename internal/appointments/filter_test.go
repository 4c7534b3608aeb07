package appointments

import (
	"testing"

	"github.com/julianstephens/labcita/internal/models"
)

func ids(appts []models.Appointment) []string {
	out := make([]string, len(appts))
	for i, a := range appts {
		out[i] = a.ID
	}
	return out
}

func TestFilterApply(t *testing.T) {
	sample := SampleAppointments()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "zero value", filter: Filter{}, want: []string{"1", "2", "3"}},
		{name: "confirmed only", filter: Filter{Status: models.StatusConfirmed}, want: []string{"1"}},
		{name: "search by name", filter: Filter{Search: "carlos"}, want: []string{"2"}},
		{name: "search by patient id", filter: Filter{Search: "pac003"}, want: []string{"3"}},
		{name: "search by lab", filter: Filter{Search: "Norte"}, want: []string{"2"}},
		{name: "search shared term", filter: Filter{Search: "laboratorio"}, want: []string{"1", "2", "3"}},
		{name: "search and status", filter: Filter{Search: "laboratorio", Status: models.StatusPending}, want: []string{"2"}},
		{name: "no match", filter: Filter{Search: "zzz"}, want: []string{}},
		{name: "hide terminal", filter: Filter{HideTerminal: true}, want: []string{"1", "2"}},
		{name: "explicit status overrides hide terminal", filter: Filter{HideTerminal: true, Status: models.StatusCompleted}, want: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(sample))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterToggleStatus(t *testing.T) {
	f := Filter{}.ToggleStatus(models.StatusPending)
	if f.Status != models.StatusPending {
		t.Fatalf("expected Pendiente, got %q", f.Status)
	}
	f = f.ToggleStatus(models.StatusConfirmed)
	if f.Status != models.StatusConfirmed {
		t.Fatalf("expected Confirmada, got %q", f.Status)
	}
	f = f.ToggleStatus(models.StatusConfirmed)
	if f.Status != "" {
		t.Fatalf("expected filter to clear, got %q", f.Status)
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(SampleAppointments())
	want := map[models.Status]int{
		models.StatusPending:   1,
		models.StatusConfirmed: 1,
		models.StatusCancelled: 0,
		models.StatusCompleted: 1,
	}
	for status, n := range want {
		got, ok := counts[status]
		if !ok {
			t.Errorf("missing entry for %s", status)
		}
		if got != n {
			t.Errorf("%s: got %d, want %d", status, got, n)
		}
	}

	empty := CountByStatus(nil)
	if len(empty) != len(models.Statuses) {
		t.Errorf("expected an entry per status, got %v", empty)
	}
}

func TestSortBySchedule(t *testing.T) {
	appts := []models.Appointment{
		{ID: "a", Date: "2026-02-24", Time: "09:30"},
		{ID: "b", Date: "2026-02-20", Time: "10:00"},
		{ID: "c", Date: "2026-02-24", Time: "08:00"},
		{ID: "d", Date: "2026-02-24", Time: "08:00"},
	}
	SortBySchedule(appts)

	got := ids(appts)
	want := []string{"b", "c", "d", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
