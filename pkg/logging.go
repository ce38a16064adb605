package pipeline

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogConfig controls how a logger used by a pipeline renders its output.
type LogConfig struct {
	// Level is a logrus level name. Verbose overrides it with "debug".
	Level   string
	Verbose bool

	// Output is one of text, json or message.
	Output   string
	Colorize bool
	Colors   map[logrus.Level]string

	// Writer defaults to os.Stdout, or os.Stderr when LogToStderr is set.
	Writer      io.Writer
	LogToStderr bool
}

var DefaultLogColors = map[logrus.Level]string{
	logrus.PanicLevel: "red",
	logrus.FatalLevel: "red",
	logrus.ErrorLevel: "red",
	logrus.WarnLevel:  "red",
	logrus.InfoLevel:  "cyan",
	logrus.DebugLevel: "dark_gray",
	logrus.TraceLevel: "dark_gray",
}

func ConfigureLogger(log *logrus.Logger, c LogConfig) error {
	level := logrus.InfoLevel
	if c.Level != "" {
		l, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", c.Level)
		}
		level = l
	}
	if c.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	switch {
	case c.Writer != nil:
		log.SetOutput(c.Writer)
	case c.LogToStderr:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(os.Stdout)
	}

	colors := c.Colors
	if colors == nil {
		colors = DefaultLogColors
	}

	switch c.Output {
	case "", "text":
		log.SetFormatter(newTextFormatter(colors, c.Colorize))
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "message":
		log.SetFormatter(&MessageOnlyFormatter{})
	default:
		return errors.Errorf("unexpected output format specified: %s", c.Output)
	}

	return nil
}
