package config

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ph_calc/diagnostics"
)

// Logger is the CLI-wide structured logger. The calculation packages never
// log; their warnings travel in a diagnostics.Report and are forwarded here.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

var logMu sync.Mutex

// InitLogger sets Logger to a console writer on stderr at the given level.
// An unknown level falls back to info.
func InitLogger(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}

// LogReport forwards every warning of report as a warn event.
func LogReport(l zerolog.Logger, component string, report *diagnostics.Report) {
	if report == nil {
		return
	}
	for _, w := range report.Warnings {
		l.Warn().
			Str("component", component).
			Str("kind", string(w.Kind)).
			Str("subject", w.Subject).
			Msg(w.Message)
	}
}
