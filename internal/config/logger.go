package config

import (
	log "github.com/sirupsen/logrus"
)

// Apply configures the global logrus logger. Unknown levels fall back to info.
func (l LoggerConfig) Apply() {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if l.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
