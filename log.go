// FILE: shelldeck/settings/log.go
package settings

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is used only on recoverable per-item error paths: a failing
// profile generator, a malformed fragment file, a best-effort backup that
// could not be created. Fatal conditions are returned as errors instead.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "settings",
	Level:           log.WarnLevel,
	ReportTimestamp: false,
})

// SetLogger replaces the package logger. Passing nil restores a silent
// logger, which is convenient for tests.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
		l.SetLevel(log.FatalLevel + 1)
	}
	logger = l
}
