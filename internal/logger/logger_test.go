package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, parseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("info"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("verbose"))
}

func TestWithFieldAddsContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	log.WithField("user_id", 42).Infof("profile completed")

	out := buf.String()
	assert.Contains(t, out, "profile completed")
	assert.Contains(t, out, "user_id=42")
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
