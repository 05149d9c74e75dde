// Package logger configures the process-wide go-logging backend.
package logger

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

const format = `%{time:2006-01-02 15:04:05} %{level:.5s} %{module} %{message}`

// Init sets the level and formatter of every go-logging logger in the
// process. It returns an error if level is not a go-logging level name.
func Init(level string) error {
	return InitWriter(os.Stdout, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string) error {
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatter)

	code, err := logging.LogLevel(level)
	if err != nil {
		return err
	}
	leveled.SetLevel(code, "")
	logging.SetBackend(leveled)
	return nil
}
