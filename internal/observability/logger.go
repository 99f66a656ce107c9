package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global logger: JSON at info level in prod,
// console output at debug level everywhere else.
func InitLogger(env string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "prod" {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	} else {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	log.Logger = logger
	return logger
}
