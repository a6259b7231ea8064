package classvm

import "github.com/sirupsen/logrus"

// NewLogger builds the structured logger the driver and VM share.
// verbose raises the level to Debug (class-loaded, <clinit>-ran,
// shutdown-triggered messages); otherwise only warnings and above are
// emitted, keeping the per-instruction interpreter loop itself silent
// either way.
func NewLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
