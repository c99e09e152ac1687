// Package config loads HealthMate settings from a TOML file. Every key has
// a default, so a missing file at the default path is not an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hammamikhairi/healthmate/internal/logger"
	"github.com/hammamikhairi/healthmate/internal/speech"
)

const (
	DefaultPath         = "~/.config/healthmate/config.toml"
	defaultLogFile      = ".healthmate-logs/healthmate.log"
	defaultCacheDir     = ".healthmate-cache"
	defaultWhisperBin   = "whisper-cli"
	defaultWhisperModel = "bin/ggml-small.bin"
	defaultRecordSecs   = 5
	defaultCellUnits    = 10
)

// Config is the resolved application configuration.
type Config struct {
	Log     Log
	Content Content
	Speech  Speech
	Voice   Voice
	Swipe   Swipe
}

type Log struct {
	Level logger.Level
	File  string // "stderr" logs to the console
}

type Content struct {
	Path string // empty uses the built-in catalog
}

type Speech struct {
	Enabled   bool
	Voice     string
	Prosody   speech.Prosody
	CacheDir  string
	DiskCache bool
	AutoIntro bool // read the intro whenever a condition opens
}

type Voice struct {
	WhisperBin   string
	WhisperModel string
	RecordSecs   int
	TempDir      string // empty records under the system temp dir
}

// Swipe scales terminal columns into swipe units. The detector threshold
// is fixed at 100 units, so 10 units per column means an 11 column drag.
type Swipe struct {
	CellUnits float64
}

// Default returns the built-in settings before path expansion.
func Default() Config {
	return Config{
		Log:     Log{Level: logger.LevelNormal, File: defaultLogFile},
		Speech:  Speech{Enabled: true, Voice: speech.DefaultVoice, Prosody: speech.SeniorProsody, CacheDir: defaultCacheDir, DiskCache: true},
		Voice:   Voice{WhisperBin: defaultWhisperBin, WhisperModel: defaultWhisperModel, RecordSecs: defaultRecordSecs},
		Swipe:   Swipe{CellUnits: defaultCellUnits},
		Content: Content{},
	}
}

type rawConfig struct {
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	Content struct {
		Path string `toml:"path"`
	} `toml:"content"`
	Speech struct {
		Enabled   *bool   `toml:"enabled"`
		Voice     string  `toml:"voice"`
		Rate      float64 `toml:"rate"`
		Pitch     float64 `toml:"pitch"`
		Volume    float64 `toml:"volume"`
		CacheDir  string  `toml:"cache_dir"`
		DiskCache *bool   `toml:"disk_cache"`
		AutoIntro bool    `toml:"auto_intro"`
	} `toml:"speech"`
	Voice struct {
		WhisperBin   string `toml:"whisper_bin"`
		WhisperModel string `toml:"whisper_model"`
		RecordSecs   int    `toml:"record_secs"`
		TempDir      string `toml:"temp_dir"`
	} `toml:"voice"`
	Swipe struct {
		CellUnits float64 `toml:"cell_units"`
	} `toml:"swipe"`
}

// Load reads the config at path, or DefaultPath when path is empty. Only
// a missing DefaultPath falls back to the defaults; a missing explicit
// path is an error.
func Load(path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Parse(nil)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes on top of the defaults.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if s := strings.TrimSpace(raw.Log.Level); s != "" {
		level, err := logger.ParseLevel(s)
		if err != nil {
			return Config{}, fmt.Errorf("log.level: %w", err)
		}
		cfg.Log.Level = level
	}
	if s := strings.TrimSpace(raw.Log.File); s != "" {
		cfg.Log.File = s
	}
	if cfg.Log.File != "stderr" {
		cfg.Log.File = mustExpand(cfg.Log.File)
	}

	if s := strings.TrimSpace(raw.Content.Path); s != "" {
		cfg.Content.Path = mustExpand(s)
	}

	if raw.Speech.Enabled != nil {
		cfg.Speech.Enabled = *raw.Speech.Enabled
	}
	if s := strings.TrimSpace(raw.Speech.Voice); s != "" {
		cfg.Speech.Voice = s
	}
	cfg.Speech.Prosody = speech.Prosody{
		Rate:   raw.Speech.Rate,
		Pitch:  raw.Speech.Pitch,
		Volume: raw.Speech.Volume,
	}.Normalize()
	if s := strings.TrimSpace(raw.Speech.CacheDir); s != "" {
		cfg.Speech.CacheDir = s
	}
	cfg.Speech.CacheDir = mustExpand(cfg.Speech.CacheDir)
	if raw.Speech.DiskCache != nil {
		cfg.Speech.DiskCache = *raw.Speech.DiskCache
	}
	cfg.Speech.AutoIntro = raw.Speech.AutoIntro

	if s := strings.TrimSpace(raw.Voice.WhisperBin); s != "" {
		cfg.Voice.WhisperBin = s
	}
	if s := strings.TrimSpace(raw.Voice.WhisperModel); s != "" {
		cfg.Voice.WhisperModel = mustExpand(s)
	}
	if raw.Voice.RecordSecs > 0 {
		cfg.Voice.RecordSecs = raw.Voice.RecordSecs
	}
	if s := strings.TrimSpace(raw.Voice.TempDir); s != "" {
		cfg.Voice.TempDir = mustExpand(s)
	}

	if raw.Swipe.CellUnits > 0 {
		cfg.Swipe.CellUnits = raw.Swipe.CellUnits
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
