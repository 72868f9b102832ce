package mysql

import (
	"fmt"

	"go.uber.org/zap"
)

// zapLogger adapts a *zap.Logger to the Logger seam so the default
// critical-error path is structured logging, matching the logging
// libraries used across the pack (kasuganosora-sqlexec, vitessio-vitess)
// rather than the teacher's bare log.Logger.
type zapLogger struct {
	l *zap.Logger
}

func newZapLogger() *zapLogger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return &zapLogger{l: l.Named("mysql")}
}

func (z *zapLogger) Print(v ...interface{}) {
	z.l.Error(fmt.Sprint(v...))
}

// debugf logs a low-volume structured debug line. Never called from a path
// that affects protocol behavior; purely diagnostic.
func (mc *Connection) debugf(msg string, fields ...zap.Field) {
	if mc.logger == nil {
		return
	}
	allFields := append([]zap.Field{
		zap.String("connection_id", mc.id.String()),
		zap.String("addr", mc.addr()),
	}, fields...)
	mc.logger.Debug(msg, allFields...)
}
