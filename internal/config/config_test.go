package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammamikhairi/healthmate/internal/logger"
	"github.com/hammamikhairi/healthmate/internal/speech"
)

func TestLoad_MissingDefaultFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != logger.LevelNormal {
		t.Fatalf("Log.Level = %v, want normal", cfg.Log.Level)
	}
	wantLog, _ := expandPath(defaultLogFile)
	if cfg.Log.File != wantLog {
		t.Fatalf("Log.File = %q, want %q", cfg.Log.File, wantLog)
	}
	if !cfg.Speech.Enabled || !cfg.Speech.DiskCache {
		t.Fatalf("speech defaults = %+v, want enabled with disk cache", cfg.Speech)
	}
	if cfg.Speech.Prosody != speech.SeniorProsody {
		t.Fatalf("Prosody = %+v, want %+v", cfg.Speech.Prosody, speech.SeniorProsody)
	}
	if cfg.Voice.RecordSecs != defaultRecordSecs {
		t.Fatalf("RecordSecs = %d, want %d", cfg.Voice.RecordSecs, defaultRecordSecs)
	}
	if cfg.Swipe.CellUnits != defaultCellUnits {
		t.Fatalf("CellUnits = %v, want %v", cfg.Swipe.CellUnits, defaultCellUnits)
	}
	if cfg.Content.Path != "" {
		t.Fatalf("Content.Path = %q, want built-in", cfg.Content.Path)
	}
	if cfg.Speech.AutoIntro {
		t.Fatalf("AutoIntro should default to off")
	}
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Load(filepath.Join(home, "does-not-exist.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[log]
level = " verbose "
file = "stderr"

[content]
path = "  ~/health/conditions.yaml  "

[speech]
enabled = false
voice = "en-US-GuyNeural"
rate = 0.7
pitch = 0.9
volume = 0.6
disk_cache = false
auto_intro = true

[voice]
whisper_bin = "/opt/whisper/whisper-cli"
record_secs = 8
temp_dir = "~/stt"

[swipe]
cell_units = 12.5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != logger.LevelVerbose {
		t.Fatalf("Log.Level = %v, want verbose", cfg.Log.Level)
	}
	if cfg.Log.File != "stderr" {
		t.Fatalf("Log.File = %q, want stderr", cfg.Log.File)
	}
	if !strings.HasPrefix(cfg.Content.Path, home) || !strings.HasSuffix(cfg.Content.Path, "conditions.yaml") {
		t.Fatalf("Content.Path = %q, want it under HOME %q", cfg.Content.Path, home)
	}
	if cfg.Speech.Enabled || cfg.Speech.DiskCache {
		t.Fatalf("speech = %+v, want disabled without disk cache", cfg.Speech)
	}
	if !cfg.Speech.AutoIntro {
		t.Fatalf("AutoIntro = false, want true")
	}
	if cfg.Speech.Voice != "en-US-GuyNeural" {
		t.Fatalf("Voice = %q", cfg.Speech.Voice)
	}
	want := speech.Prosody{Rate: 0.7, Pitch: 0.9, Volume: 0.6}
	if cfg.Speech.Prosody != want {
		t.Fatalf("Prosody = %+v, want %+v", cfg.Speech.Prosody, want)
	}
	if cfg.Voice.WhisperBin != "/opt/whisper/whisper-cli" || cfg.Voice.RecordSecs != 8 {
		t.Fatalf("Voice = %+v", cfg.Voice)
	}
	if cfg.Voice.TempDir != filepath.Join(home, "stt") {
		t.Fatalf("TempDir = %q", cfg.Voice.TempDir)
	}
	if cfg.Voice.WhisperModel == "" {
		t.Fatalf("WhisperModel should keep its default")
	}
	if cfg.Swipe.CellUnits != 12.5 {
		t.Fatalf("CellUnits = %v, want 12.5", cfg.Swipe.CellUnits)
	}
}

func TestLoad_PartialProsodyFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[speech]\nrate = 1.1\nvolume = 7\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := speech.Prosody{Rate: 1.1, Pitch: speech.SeniorProsody.Pitch, Volume: speech.SeniorProsody.Volume}
	if cfg.Speech.Prosody != want {
		t.Fatalf("Prosody = %+v, want %+v", cfg.Speech.Prosody, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "[log\nlevel = 1"},
		{"bad level", "[log]\nlevel = \"chatty\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("Load succeeded, want error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/x/y")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("expandPath = %q", got)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath of blank should fail")
	}
}
