// Package telemetry wires optional Sentry error reporting.
// Without SENTRY_DSN in the environment it is fully inert.
package telemetry

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Init sets up Sentry if a DSN is provided. No DSN is not an error.
func Init(release string) error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = "production"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		return err
	}
	enabled = true
	return nil
}

// CaptureError reports err to Sentry when initialized.
func CaptureError(err error) {
	if !enabled || err == nil {
		return
	}
	sentry.CaptureException(err)
}

// Flush drains pending events before process exit.
func Flush() {
	if !enabled {
		return
	}
	sentry.Flush(2 * time.Second)
}
