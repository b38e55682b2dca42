package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"SCHEDULING_PLATFORM_BACK-END/internal/config"
)

// Setup configures the global logrus logger from cfg and writes to out.
func Setup(cfg config.LogConfig, out io.Writer) {
	log.SetOutput(out)
	log.SetLevel(ParseLevel(cfg.Level))

	switch normalize(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// ParseLevel maps a level name to a logrus level, falling back to info.
func ParseLevel(value string) log.Level {
	switch normalize(value) {
	case "warning":
		return log.WarnLevel
	case "critical":
		return log.FatalLevel
	}
	level, err := log.ParseLevel(normalize(value))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
