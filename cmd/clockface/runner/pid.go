package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// CreatePidFile refuses to start when another live process owns path.
func CreatePidFile(path string) error {
	if pidBytes, err := os.ReadFile(path); err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(pidBytes)))
		if err != nil {
			return fmt.Errorf("pidfile: could not parse pid: %w", err)
		}

		if process, err := os.FindProcess(pid); err == nil {
			// signal 0 only checks that the process exists
			if err := process.Signal(syscall.Signal(0)); err == nil {
				return fmt.Errorf("pidfile: process with pid %d already exists", pid)
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("pidfile: could not read pid file: %w", err)
	}

	pid := os.Getpid()
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("pidfile: could not write pid file: %w", err)
	}

	return nil
}

func RemovePidFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("pidfile: could not remove pid file: %w", err)
	}
	return nil
}
