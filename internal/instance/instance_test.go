package instance

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func withProcesses(t *testing.T, self int, procs map[int]string) {
	t.Helper()
	oldFind, oldList, oldPid := findProcessFunc, processesFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc = oldFind
		processesFunc = oldList
		getpidFunc = oldPid
	})
	getpidFunc = func() int { return self }
	processesFunc = func() ([]ps.Process, error) {
		var out []ps.Process
		for pid, exe := range procs {
			out = append(out, &mockProcess{pid: pid, executable: exe})
		}
		return out, nil
	}
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestParseLockfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantPID int
		wantErr bool
	}{
		{name: "valid", content: "4242|2026-02-01T10:00:00Z", wantPID: 4242},
		{name: "trailing newline", content: "17|2026-02-01T10:00:00Z\n", wantPID: 17},
		{name: "missing time", content: "4242", wantErr: true},
		{name: "bad pid", content: "abc|2026-02-01T10:00:00Z", wantErr: true},
		{name: "negative pid", content: "-3|2026-02-01T10:00:00Z", wantErr: true},
		{name: "bad time", content: "4242|yesterday", wantErr: true},
		{name: "extra field", content: "1|2|3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holder, err := parseLockfile(tt.content)
			if tt.wantErr {
				if !errors.Is(err, errMalformed) {
					t.Errorf("expected errMalformed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if holder.PID != tt.wantPID {
				t.Errorf("pid = %d, want %d", holder.PID, tt.wantPID)
			}
		})
	}
}

func TestRunning(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		procs       map[int]string
		wantRunning bool
	}{
		{name: "live labcita process", content: "100|2026-02-01T10:00:00Z", procs: map[int]string{100: "labcita"}, wantRunning: true},
		{name: "process gone", content: "100|2026-02-01T10:00:00Z", procs: map[int]string{}},
		{name: "pid reused by another program", content: "100|2026-02-01T10:00:00Z", procs: map[int]string{100: "bash"}},
		{name: "garbled lockfile", content: "garbage", procs: map[int]string{100: "labcita"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcesses(t, 1, tt.procs)
			path := filepath.Join(t.TempDir(), lockfileName)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, running, err := Running(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if running != tt.wantRunning {
				t.Errorf("running = %v, want %v", running, tt.wantRunning)
			}
		})
	}
}

func TestRunningWithoutLockfile(t *testing.T) {
	_, running, err := Running(filepath.Join(t.TempDir(), lockfileName))
	if err != nil || running {
		t.Errorf("expected no holder and no error, got running=%v err=%v", running, err)
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	path := LockPath(filepath.Join(dir, "labcita.db"))
	if path != filepath.Join(dir, lockfileName) {
		t.Fatalf("unexpected lock path %s", path)
	}

	withProcesses(t, 200, map[int]string{200: "labcita"})
	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	holder, running, err := Running(path)
	if err != nil || !running || holder.PID != 200 {
		t.Fatalf("expected pid 200 to hold the lock, got %+v running=%v err=%v", holder, running, err)
	}

	// Same process may re-acquire
	if _, err := Acquire(path); err != nil {
		t.Errorf("re-acquire by the holder failed: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lockfile should be removed")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got %v", err)
	}
}

func TestAcquireHeldByOtherProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), lockfileName)
	if err := os.WriteFile(path, []byte("300|2026-02-01T10:00:00Z"), 0600); err != nil {
		t.Fatal(err)
	}

	withProcesses(t, 400, map[int]string{300: "labcita", 400: "labcita"})
	if _, err := Acquire(path); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	// Stale lock from a dead process is taken over
	withProcesses(t, 400, map[int]string{400: "labcita"})
	if _, err := Acquire(path); err != nil {
		t.Fatalf("stale lock should be replaced, got %v", err)
	}
	holder, _, _ := Running(path)
	if holder.PID != 400 {
		t.Errorf("expected pid 400 in lockfile, got %d", holder.PID)
	}
}

func TestOthers(t *testing.T) {
	withProcesses(t, 10, map[int]string{10: "labcita", 11: "labcita", 12: "bash", 13: "labcita-dev"})

	pids, err := Others()
	if err != nil {
		t.Fatalf("Others failed: %v", err)
	}
	sort.Ints(pids)
	if len(pids) != 2 || pids[0] != 11 || pids[1] != 13 {
		t.Errorf("expected pids [11 13], got %v", pids)
	}
}
