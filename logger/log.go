// Package logger sets up the btclog backend the rest of the repo
// logs through: one writer feeding stdout and an optional rotating
// log file, with a named logger per subsystem.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter duplicates log output to stdout and, once InitLogRotator
// has run, to the rotating file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})
	logRotator *rotator.Rotator

	// MainLog is for the top level binary glue.
	MainLog = backendLog.Logger("MAIN")

	// StoreLog is for the committed root store.
	StoreLog = backendLog.Logger("RSTR")

	// NodeLog is for the proof server and client.
	NodeLog = backendLog.Logger("NODE")
)

var subsystemLoggers = map[string]btclog.Logger{
	"MAIN": MainLog,
	"RSTR": StoreLog,
	"NODE": NodeLog,
}

// InitLogRotator starts the rotating log file at logFile, creating
// the directory it lives in when needed.
func InitLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %v", err)
	}
	logRotator = r
	return nil
}

// CloseLogRotator flushes and closes the rotating log file.
func CloseLogRotator() {
	if logRotator != nil {
		logRotator.Close()
	}
}

// SetLogLevels sets the level of every subsystem logger from a level
// string; returns false if the string names no known level.
func SetLogLevels(levelStr string) bool {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		return false
	}
	for _, l := range subsystemLoggers {
		l.SetLevel(level)
	}
	return true
}

// SupportedSubsystems returns the subsystem tags, for help output.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for tag := range subsystemLoggers {
		subsystems = append(subsystems, tag)
	}
	return subsystems
}
