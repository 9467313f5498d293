package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

const pidFile = "vrchat-light-sync.pid"

func path() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Write records the current process ID, refusing when a previous instance
// still holds the file and its process is alive. A stale or unreadable
// file is reclaimed.
func Write() error {
	errFactory := errors.New()

	if otherPID, err := read(); err == nil && isAlive(otherPID) {
		return errFactory.WithMessage(errors.ErrAlreadyRunning,
			"another instance is already running with PID "+strconv.Itoa(otherPID))
	}

	if err := os.WriteFile(path(), []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file.
func Remove() error {
	errFactory := errors.New()

	if err := os.Remove(path()); err != nil && !os.IsNotExist(err) {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

func read() (int, error) {
	bytes, err := os.ReadFile(path())
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(string(bytes)))
}

// isAlive probes the process with signal 0.
func isAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
