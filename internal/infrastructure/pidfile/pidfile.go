// Package pidfile keeps a single planner daemon per PID file.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning is returned by Acquire while another live process owns the file
var ErrAlreadyRunning = errors.New("planner daemon is already running")

// PIDFile manages a process ID file for daemon single-instance enforcement
type PIDFile struct {
	path string

	// KillTimeout bounds how long KillExisting waits after SIGTERM before SIGKILL
	KillTimeout time.Duration
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path, KillTimeout: 5 * time.Second}
}

// Path returns the PID file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current process ID. A stale or unreadable file is replaced;
// a file naming a live process fails with ErrAlreadyRunning.
func (p *PIDFile) Acquire() error {
	pid, err := p.ReadPID()
	switch {
	case err == nil && pid != os.Getpid() && isProcessRunning(pid):
		return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, pid)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		// Unparseable content is treated as stale
		_ = os.Remove(p.path)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create PID file directory: %w", err)
	}

	pidData := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(pidData), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// ReadPID returns the process ID stored in the file
func (p *PIDFile) ReadPID() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID file content %q", strings.TrimSpace(string(data)))
	}
	return pid, nil
}

// KillExisting stops the process named by the file: SIGTERM first, SIGKILL once
// KillTimeout has passed. A missing file or a dead process is not an error.
func (p *PIDFile) KillExisting() error {
	pid, err := p.ReadPID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return p.Release()
	}
	if pid == os.Getpid() {
		return fmt.Errorf("refusing to kill own process (PID %d)", pid)
	}
	if !isProcessRunning(pid) {
		return p.Release()
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}

	deadline := time.Now().Add(p.KillTimeout)
	for time.Now().Before(deadline) {
		if !isProcessRunning(pid) {
			return p.Release()
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err := process.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return p.Release()
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning sends signal 0, which checks existence without delivering anything
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM: the process exists but belongs to someone else
	return errors.Is(err, syscall.EPERM)
}
