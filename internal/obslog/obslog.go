package obslog

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// Logger is the checker-internal logging facade. The zero value is not
// usable; construct one with Nop or New.
type Logger struct {
	z *zap.Logger
}

// Nop returns a Logger that discards everything, the default used by
// every component that isn't handed an explicit Logger.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// New wraps an existing zap.Logger. Passing nil is equivalent to Nop.
func New(z *zap.Logger) *Logger {
	if z == nil {
		return Nop()
	}
	return &Logger{z: z}
}

// Frontier logs a single search-engine descent at debug level, dumping
// the frontier vector with spew so its shape is legible without a
// custom formatter. Cheap to call unconditionally: zap's debug check
// is a level comparison, and spew.Sdump only runs when debug logging is
// actually enabled.
func (l *Logger) Frontier(msg string, clientIdx int, frontier any) {
	if l == nil || l.z == nil {
		return
	}
	if ce := l.z.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(
			zap.Int("client", clientIdx),
			zap.String("frontier", spew.Sdump(frontier)),
		)
	}
}

// Debug logs a free-form debug line with structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.z == nil {
		return nil
	}
	return l.z.Sync()
}
