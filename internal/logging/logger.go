package logging

import (
	"io"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(newStdoutHandler(os.Stdout, appEnv)))
}

// AttachDatabase adds the PostgreSQL ERROR+ sink next to stdout and returns it
// so the caller can stop it on shutdown.
func AttachDatabase(db *gorm.DB, appEnv string) *PGHandler {
	pg := NewPGHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(newStdoutHandler(os.Stdout, appEnv), pg)))
	return pg
}

func newStdoutHandler(w io.Writer, appEnv string) slog.Handler {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
