package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "tower-jumper.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens the debug log file; without debug every log line is discarded
// Output never goes to stdout or stderr, which belong to the terminal screen
// The standard logger is redirected too so library output cannot corrupt the screen
func setupLogging(debug bool) (zerolog.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("tower-jumper-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	log.SetOutput(f)
	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger, f
}
