package main

import (
	"io"
	"log"
	"os"

	"github.com/hashicorp/logutils"
	"github.com/pkg/errors"
)

// setupLogging routes the std logger through a level filter. dest is a file
// name, or empty for stderr. The returned func closes the destination.
func setupLogging(debug bool, dest string) (func() error, error) {
	minLogLevel := "INFO"
	if debug {
		minLogLevel = "DEBUG"
	}
	var logWriter io.Writer = os.Stderr
	closeLog := func() error { return nil }
	if dest != "" {
		f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_APPEND|os.O_SYNC, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "opening log destination")
		}
		logWriter = f
		closeLog = f.Close
	}

	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "ERROR"},
		MinLevel: logutils.LogLevel(minLogLevel),
		Writer:   logWriter,
	}
	log.SetOutput(filter)
	log.Print("[DEBUG] Debug is on")
	return closeLog, nil
}
