package logtest

import (
	"errors"
	"testing"

	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	l := New(t)

	l.With(logging.Fields{"request_id": "abc"}).Info("hello", logging.Fields{"n": 1})
	l.WithError(errors.New("boom")).Warn("failed", nil)
	assert.NotNil(t, l)
}
