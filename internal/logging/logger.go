// Package logging adapts zerolog to the login.LoggerFacade collaborator
// interface.
package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-login-manager/login"
)

var _ login.LoggerFacade = (*Logger)(nil)

type Logger struct {
	log zerolog.Logger
}

// New wraps an existing zerolog logger.
func New(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// NewConsole builds a human-readable console logger writing to out.
func NewConsole(out io.Writer) *Logger {
	log := zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	return &Logger{log: log}
}

func (l *Logger) LogError(message string, cause error) {
	l.log.Error().Err(cause).Msg(message)
}

func (l *Logger) LogWarning(message string) {
	l.log.Warn().Msg(message)
}
