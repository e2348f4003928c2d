package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesFile(t *testing.T) {
	cfg := GenerateTestConfig(t)
	cfg.DisableConsole = true
	cfg.FileLevel = logrus.InfoLevel
	SetDefaultConfig(cfg)

	logger := NewLogger()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debugf("dropped")
	logger.Infof("kept line_id=%s", "L1")

	matches, err := filepath.Glob(filepath.Join(cfg.FileDir, "annotator-*.log"))
	require.Nil(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.Nil(t, err)
	assert.Contains(t, string(data), "kept line_id=L1")
	assert.NotContains(t, string(data), "dropped")
}

func TestLevelsUpTo(t *testing.T) {
	levels := levelsUpTo(logrus.WarnLevel)
	assert.Equal(t, []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}, levels)
}
