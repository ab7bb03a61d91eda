// Package logruslog adapts a *logrus.Entry to xcoobee.Logger.
package logruslog

import (
	"github.com/sirupsen/logrus"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

var _ xcoobee.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

func New(l *logrus.Logger) Logger { return Logger{E: logrus.NewEntry(l)} }

func (l Logger) Debug(msg string, f map[string]interface{}) { l.E.WithFields(f).Debug(msg) }
func (l Logger) Info(msg string, f map[string]interface{})  { l.E.WithFields(f).Info(msg) }
func (l Logger) Warn(msg string, f map[string]interface{})  { l.E.WithFields(f).Warn(msg) }
func (l Logger) Error(msg string, f map[string]interface{}) { l.E.WithFields(f).Error(msg) }
