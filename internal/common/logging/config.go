package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/oms-project/omsctl/internal/common/omserrors"
)

const (
	FormatPlain = "plain"
	FormatText  = "text"
	FormatJson  = "json"
)

// Config defines omsctl logging configuration.
type Config struct {
	// Log level, e.g. info, debug etc
	Level string
	// Logging format, one of plain, text or json
	Format string
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    "logLevel",
			Value:   c.Level,
			Message: err.Error(),
		})
	}
	switch c.Format {
	case FormatPlain, FormatText, FormatJson:
		return nil
	default:
		return errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    "logFormat",
			Value:   c.Format,
			Message: "must be one of plain, text, json",
		})
	}
}

// ConfigureCommandLineLogging sets up logging suitable for a command line tool: plain messages on stderr,
// so that stdout only carries command output.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&CommandLineFormatter{})
	log.SetOutput(os.Stderr)
}

// Configure applies c to the standard logger, writing to out.
func Configure(c Config, out io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := log.ParseLevel(c.Level)
	log.SetLevel(level)
	log.SetOutput(out)
	switch c.Format {
	case FormatText:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case FormatJson:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&CommandLineFormatter{})
	}
	return nil
}
