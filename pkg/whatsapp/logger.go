package whatsapp

import (
	"fmt"

	"github.com/sirupsen/logrus"
	waLog "go.mau.fi/whatsmeow/util/log"
)

type logrusAdapter struct {
	entry *logrus.Entry
}

// NewLogger bridges whatsmeow logging into logrus under a module field.
func NewLogger(log *logrus.Logger, module string) waLog.Logger {
	return &logrusAdapter{entry: log.WithField("module", module)}
}

func (l *logrusAdapter) Errorf(msg string, args ...interface{}) {
	l.entry.Errorf(msg, args...)
}

func (l *logrusAdapter) Warnf(msg string, args ...interface{}) {
	l.entry.Warnf(msg, args...)
}

func (l *logrusAdapter) Infof(msg string, args ...interface{}) {
	l.entry.Infof(msg, args...)
}

func (l *logrusAdapter) Debugf(msg string, args ...interface{}) {
	l.entry.Debugf(msg, args...)
}

func (l *logrusAdapter) Sub(module string) waLog.Logger {
	parent, _ := l.entry.Data["module"].(string)
	return &logrusAdapter{entry: l.entry.WithField("module", fmt.Sprintf("%s/%s", parent, module))}
}
