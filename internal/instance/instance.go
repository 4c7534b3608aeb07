// Package instance tracks the running labcita TUI through a lockfile next to
// the database, so that restores and diagnostics can tell whether another
// process still has the database open.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/labcita/internal/constants"
)

const lockfileName = "labcita.lock"

var (
	// ErrAlreadyRunning is returned by Acquire when a live labcita process
	// holds the lock.
	ErrAlreadyRunning = errors.New("another labcita instance is running")
	errMalformed      = errors.New("lockfile is malformed")
)

var (
	findProcessFunc = ps.FindProcess
	processesFunc   = ps.Processes
	getpidFunc      = os.Getpid
)

// Holder describes the process named in a lockfile.
type Holder struct {
	PID       int
	StartedAt time.Time
}

// Lock is a held lockfile.
type Lock struct {
	path string
}

// LockPath returns the lockfile path for the database at dbPath.
func LockPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), lockfileName)
}

// Acquire writes the lockfile at path for the current process. A lockfile
// left behind by a process that is no longer running is replaced.
func Acquire(path string) (*Lock, error) {
	holder, running, err := Running(path)
	if err != nil {
		return nil, err
	}
	if running && holder.PID != getpidFunc() {
		return nil, fmt.Errorf("%w (pid %d since %s)", ErrAlreadyRunning, holder.PID, holder.StartedAt.Format(time.RFC3339))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	content := fmt.Sprintf("%d|%s", getpidFunc(), time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Running reads the lockfile at path and reports whether the process it
// names is alive and is a labcita executable. A missing lockfile is not an
// error.
func Running(path string) (Holder, bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Holder{}, false, nil
	}
	if err != nil {
		return Holder{}, false, fmt.Errorf("failed to read lockfile: %w", err)
	}

	holder, err := parseLockfile(string(content))
	if err != nil {
		// A garbled lockfile cannot name a live holder
		return Holder{}, false, nil
	}

	process, err := findProcessFunc(holder.PID)
	if err != nil || process == nil {
		return holder, false, nil
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return holder, false, nil
	}
	return holder, true, nil
}

func parseLockfile(content string) (Holder, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 2 {
		return Holder{}, errMalformed
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, fmt.Errorf("%w: invalid process ID", errMalformed)
	}
	started, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Holder{}, fmt.Errorf("%w: invalid start time", errMalformed)
	}
	return Holder{PID: pid, StartedAt: started}, nil
}

// Others returns the pids of labcita processes other than the current one,
// lockfile or not.
func Others() ([]int, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	self := getpidFunc()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
