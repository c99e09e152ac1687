package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/healthmate/internal/audio"
	"github.com/hammamikhairi/healthmate/internal/config"
	"github.com/hammamikhairi/healthmate/internal/content"
	"github.com/hammamikhairi/healthmate/internal/display"
	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/engine"
	"github.com/hammamikhairi/healthmate/internal/logger"
	"github.com/hammamikhairi/healthmate/internal/speech"
)

// app bundles everything a command needs after startup.
type app struct {
	cfg     config.Config
	log     *logger.Logger
	repo    *content.Repository
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// setup loads config, opens the log and loads the catalog. Only a bad
// config or catalog file is fatal.
func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)

	a := &app{cfg: cfg}
	a.log = a.openLog()

	repo, err := content.Open(cfg.Content.Path, a.log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading conditions: %w", err)
	}
	a.repo = repo
	return a, nil
}

func applyFlags(cfg *config.Config) {
	if verbose {
		cfg.Log.Level = logger.LevelVerbose
	}
	if quiet {
		cfg.Log.Level = logger.LevelOff
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if contentPath != "" {
		cfg.Content.Path = contentPath
	}
	if noSpeech {
		cfg.Speech.Enabled = false
	}
}

// openLog directs logs to a file by default so the UI stays clean.
func (a *app) openLog() *logger.Logger {
	var out io.Writer = os.Stderr
	if path := a.cfg.Log.File; path != "" && path != "stderr" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			out = f
			a.closers = append(a.closers, func() { f.Close() })
		}
	}

	// The whisper transcriber logs through the std log package.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	return logger.New(a.cfg.Log.Level, out)
}

// speaker returns the TTS output, or a silent speaker when Azure keys or an
// audio device are missing.
func (a *app) speaker(ctx context.Context) domain.Speaker {
	if !a.cfg.Speech.Enabled {
		return speech.NewNoOp(a.log)
	}
	key := os.Getenv(speech.EnvAzureSpeechKey)
	region := os.Getenv(speech.EnvAzureSpeechRegion)
	if key == "" || region == "" {
		a.log.Info("TTS disabled: set %s and %s env vars to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
		return speech.NewNoOp(a.log)
	}

	sc := a.cfg.Speech
	tts := speech.NewAzureClient(key, region, a.log,
		speech.WithVoice(sc.Voice),
		speech.WithProsody(sc.Prosody),
	)
	// Volume travels in the SSML prosody; the device plays at full scale.
	player, err := audio.NewPlayer(a.log)
	if err != nil {
		a.log.Error("audio player init failed, speech disabled: %v", err)
		return speech.NewNoOp(a.log)
	}

	mouth := speech.NewMouth(tts, player, a.log,
		speech.WithCacheDir(sc.CacheDir),
		speech.WithDiskWrite(sc.DiskCache),
	)
	mouth.Start(ctx)
	a.closers = append(a.closers, func() {
		mouth.Interrupt()
		mouth.Wait()
		hits, misses := mouth.Cache().Stats()
		a.log.Info("TTS cache: %d hits, %d misses", hits, misses)
	})
	a.log.Info("TTS enabled (voice=%s, region=%s, %s)", tts.Voice(), region, tts.Prosody())
	return mouth
}

// listener returns the voice input, or nil when it cannot work here.
func (a *app) listener() domain.Listener {
	if noVoice {
		return nil
	}
	vc := a.cfg.Voice
	ear, err := audio.NewEar(vc.WhisperBin, vc.WhisperModel, a.log,
		audio.WithRecordDuration(time.Duration(vc.RecordSecs)*time.Second),
		audio.WithTempDir(vc.TempDir),
	)
	if err != nil {
		a.log.Info("voice input off: %v", err)
		return nil
	}
	a.log.Info("voice input enabled (bin=%s, model=%s, %ds)", vc.WhisperBin, vc.WhisperModel, vc.RecordSecs)
	return ear
}

func runBrowse(cmd *cobra.Command, args []string) error {
	return browse(cmd.Context(), "")
}

func runShow(cmd *cobra.Command, args []string) error {
	return browse(cmd.Context(), args[0])
}

// browse runs the interactive UI, optionally starting on a condition page.
func browse(ctx context.Context, startID string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng := engine.New(a.repo, a.log,
		engine.WithSpeaker(a.speaker(ctx)),
		engine.WithAutoIntro(a.cfg.Speech.AutoIntro),
	)
	if startID != "" {
		// An unknown id lands on the not-found page.
		_ = eng.Open(ctx, startID)
	}

	var opts []display.Option
	if l := a.listener(); l != nil {
		opts = append(opts, display.WithListener(l))
	}
	opts = append(opts, display.WithCellUnits(a.cfg.Swipe.CellUnits))

	ui := display.NewUI(ctx, eng, a.log, opts...)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.log.Error("display: %v", err)
		return err
	}
	return nil
}
