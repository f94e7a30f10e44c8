package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 5, cfg.TargetCount)
	assert.Equal(t, 25, cfg.MinSec)
	assert.Equal(t, 45, cfg.MaxSec)
	assert.Equal(t, 3, cfg.MaxConcurrentJobs)
	assert.Equal(t, 30*time.Minute, cfg.TranscribeTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JobRetention)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("TARGET_COUNT", "7")
	t.Setenv("RENDER_TIMEOUT", "2m")

	cfg := Load()
	assert.Equal(t, "k", cfg.GeminiAPIKey)
	assert.Equal(t, 7, cfg.TargetCount)
	assert.Equal(t, 2*time.Minute, cfg.RenderTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	require.Empty(t, cfg.Validate())

	cfg.WhisperModel = ""
	cfg.MaxSec = cfg.MinSec
	cfg.MaxConcurrentJobs = 0
	problems := cfg.Validate()
	assert.Len(t, problems, 3)
}

func TestTmpPath(t *testing.T) {
	cfg := Load()
	cfg.TmpDir = t.TempDir() + "/nested"

	p, err := cfg.TmpPath("input.mp4")
	require.NoError(t, err)
	assert.Contains(t, p, "input.mp4")
}
