// Package config loads service configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration. Values come from environment
// variables; defaults match a local single-machine setup.
type Config struct {
	// Text generation (optional; empty key disables the model path).
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// Toolchain paths.
	FFmpegPath   string
	FFprobePath  string
	WhisperBin   string
	WhisperModel string

	// Selection defaults.
	TargetCount int
	MinSec      int
	MaxSec      int

	// Job management.
	MaxConcurrentJobs int
	JobRetention      time.Duration

	// Filesystem.
	TmpDir string
	OutDir string

	// Timeouts.
	TranscribeTimeout time.Duration
	RenderTimeout     time.Duration

	// Logging.
	LogLevel       string
	LogDevelopment bool
}

// Load reads configuration from the environment. Callers load .env first if
// they want file-based overrides.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("FFMPEG_PATH", "ffmpeg")
	v.SetDefault("FFPROBE_PATH", "ffprobe")
	v.SetDefault("WHISPER_BIN", ".cache/bin/whisper")
	v.SetDefault("WHISPER_MODEL", ".cache/models/ggml-base.bin")
	v.SetDefault("TARGET_COUNT", 5)
	v.SetDefault("MIN_SEC", 25)
	v.SetDefault("MAX_SEC", 45)
	v.SetDefault("MAX_CONCURRENT_JOBS", 3)
	v.SetDefault("JOB_RETENTION", "24h")
	v.SetDefault("TMP_DIR", os.TempDir())
	v.SetDefault("OUT_DIR", "out")
	v.SetDefault("TRANSCRIBE_TIMEOUT", "30m")
	v.SetDefault("RENDER_TIMEOUT", "10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)

	return Config{
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		GeminiBaseURL:     v.GetString("GEMINI_BASE_URL"),
		FFmpegPath:        v.GetString("FFMPEG_PATH"),
		FFprobePath:       v.GetString("FFPROBE_PATH"),
		WhisperBin:        v.GetString("WHISPER_BIN"),
		WhisperModel:      v.GetString("WHISPER_MODEL"),
		TargetCount:       v.GetInt("TARGET_COUNT"),
		MinSec:            v.GetInt("MIN_SEC"),
		MaxSec:            v.GetInt("MAX_SEC"),
		MaxConcurrentJobs: v.GetInt("MAX_CONCURRENT_JOBS"),
		JobRetention:      v.GetDuration("JOB_RETENTION"),
		TmpDir:            v.GetString("TMP_DIR"),
		OutDir:            v.GetString("OUT_DIR"),
		TranscribeTimeout: v.GetDuration("TRANSCRIBE_TIMEOUT"),
		RenderTimeout:     v.GetDuration("RENDER_TIMEOUT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogDevelopment:    v.GetBool("LOG_DEVELOPMENT"),
	}
}

// Validate returns the list of problems with required settings. An empty
// slice means the config is usable.
func (c Config) Validate() []string {
	var problems []string
	if c.WhisperModel == "" {
		problems = append(problems, "WHISPER_MODEL is required")
	}
	if c.MinSec <= 0 {
		problems = append(problems, "MIN_SEC must be > 0")
	}
	if c.MaxSec <= c.MinSec {
		problems = append(problems, "MAX_SEC must be greater than MIN_SEC")
	}
	if c.MaxConcurrentJobs <= 0 {
		problems = append(problems, "MAX_CONCURRENT_JOBS must be > 0")
	}
	return problems
}

// TmpPath places filename under the configured temp directory, creating the
// directory if needed.
func (c Config) TmpPath(filename string) (string, error) {
	if err := os.MkdirAll(c.TmpDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(c.TmpDir, filename), nil
}
