// Package storage selects and implements favorites persistence backends.
package storage

import (
	"fmt"
	"os"
	"sync"

	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/config"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

var (
	stateDir string
	initOnce = &sync.Once{}
	initMu   sync.RWMutex
	initErr  error
)

// Init creates the state directory. Safe for concurrent calls; the first
// result is remembered until Reset.
func Init() error {
	initOnce.Do(func() {
		dir := config.Get("state_dir", "")
		var err error
		if dir == "" {
			err = fmt.Errorf("storage initialization failed: state_dir not configured")
		} else if mkErr := os.MkdirAll(dir, FileModeDir); mkErr != nil {
			err = fmt.Errorf("failed to create state directory: %w", mkErr)
		}

		initMu.Lock()
		if err == nil {
			stateDir = dir
		}
		initErr = err
		initMu.Unlock()
		colors.Debug("state_dir: " + dir)
	})

	initMu.RLock()
	defer initMu.RUnlock()
	return initErr
}

// GetStateDir returns the state directory path.
func GetStateDir() string {
	initMu.RLock()
	dir := stateDir
	initMu.RUnlock()
	if dir != "" {
		return dir
	}
	return config.Get("state_dir", "")
}

// Reset resets the storage package state for testing.
func Reset() {
	initMu.Lock()
	defer initMu.Unlock()
	stateDir = ""
	initErr = nil
	initOnce = &sync.Once{}
}
