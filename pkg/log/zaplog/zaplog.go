// Package zaplog adapts a *zap.Logger to xcoobee.Logger.
package zaplog

import (
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
	"go.uber.org/zap"
)

var _ xcoobee.Logger = Logger{}

type Logger struct{ L *zap.Logger }

func New(l *zap.Logger) Logger { return Logger{L: l} }

func (z Logger) Debug(msg string, f map[string]interface{}) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f map[string]interface{})  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f map[string]interface{})  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f map[string]interface{}) { z.L.Error(msg, fields(f)...) }

func fields(f map[string]interface{}) []zap.Field {
	if len(f) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}

	return out
}
