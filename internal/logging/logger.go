package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger: JSON output, Info level or
// Debug when debug is set.
func Init(debug bool) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// AccessWriter returns a writer that emits each access log line as an info entry
func AccessWriter() io.Writer {
	return logrus.WithField("component", "http").WriterLevel(logrus.InfoLevel)
}
