
package logger

import (
	"io"
	"log"
	"os"
)

type Logger struct {
	l       *log.Logger
	verbose bool
}

func New() *Logger { return NewWriter(os.Stderr, false) }

// NewWriter logs to w; Debugf lines are dropped unless verbose is set.
func NewWriter(w io.Writer, verbose bool) *Logger {
	return &Logger{l: log.New(w, "", log.LstdFlags), verbose: verbose}
}

func (l *Logger) Debugf(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.l.Printf("[DEBUG] "+format, args...)
}
func (l *Logger) Infof(format string, args ...any) {
	l.l.Printf("[INFO] "+format, args...)
}
func (l *Logger) Warnf(format string, args ...any) {
	l.l.Printf("[WARN] "+format, args...)
}
func (l *Logger) Errorf(format string, args ...any) {
	l.l.Printf("[ERROR] "+format, args...)
}
