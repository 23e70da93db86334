// Package logtest provides loggers for tests.
package logtest

import (
	"testing"

	"github.com/jonathan/success-predictor/internal/logging"
	"go.uber.org/zap/zaptest"
)

// New returns a Logger that writes through t.Log.
func New(t testing.TB) logging.Logger {
	return logging.FromZap(zaptest.NewLogger(t))
}
