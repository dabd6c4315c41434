// Package logging provides the process-wide structured logger shared by
// every fetch client and search engine.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// L is the package-level logger, configured once at init the same way
// the reference spider sets up its own Logger global.
var L *logrus.Logger

func init() {
	L = &logrus.Logger{
		Out:   os.Stderr,
		Level: logrus.InfoLevel,
		Formatter: &prefixed.TextFormatter{
			ForceColors:     true,
			ForceFormatting: true,
		},
	}
}

// SetLevel adjusts verbosity; called from the CLI's --debug flag.
func SetLevel(level logrus.Level) {
	L.SetLevel(level)
}
