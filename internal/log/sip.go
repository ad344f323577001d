package log

import (
	gosiplog "github.com/ghettovoice/gosip/log"
	"github.com/sirupsen/logrus"
)

// NewSIPLogger returns a logger for the gosip parser. It writes to the same
// destinations as the slog handler installed by Init.
func NewSIPLogger() gosiplog.Logger {
	mu.RLock()
	w, lvl, fmtName := output, levelName, format
	mu.RUnlock()

	l := logrus.New()
	l.SetOutput(w)
	if fmtName == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return gosiplog.NewLogrusLogger(l, "sip", nil)
}
