package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"voice-assistant/config"
	"voice-assistant/internal/application"
	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/audio"
	"voice-assistant/internal/infra/browser"
	"voice-assistant/internal/infra/cue"
	"voice-assistant/internal/infra/google"
	"voice-assistant/internal/infra/openai"
	"voice-assistant/internal/infra/proxy"
	"voice-assistant/internal/infra/tts"
	"voice-assistant/internal/infra/vosk"
	"voice-assistant/internal/infra/whisper"
)

type offlineEngine interface {
	application.OfflineRecognizer
	Close()
}

func main() {
	configPath := flag.StringP("config", "c", "config.yaml", "path to config file")
	envFile := flag.StringP("env", "e", ".env", "path to env file")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("loading env file", "path", *envFile, "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	matchMode, err := domain.ParseMatchMode(cfg.Commands.Match)
	if err != nil {
		logger.Error("invalid command match mode", "error", err)
		os.Exit(1)
	}

	profile := domain.VoiceProfile{
		AssistantName: cfg.Assistant.Name,
		Locale:        cfg.Assistant.Locale,
		Voice:         cfg.Voice.Voice,
	}

	fsys := afero.NewOsFs()
	waveforms := audio.NewWaveformFile(fsys, cfg.Audio.WaveformPath)
	audioSource := createAudioSource(cfg.Audio, fsys, logger)

	httpClient, err := proxy.NewHTTPClient(cfg.Recognition.Proxy, parseDuration(cfg.Recognition.Timeout, 30*time.Second, logger))
	if err != nil {
		logger.Error("creating http client", "proxy", cfg.Recognition.Proxy, "error", err)
		os.Exit(1)
	}

	online := createOnlineRecognizer(cfg.Recognition, profile.Locale, httpClient, logger)
	offline := createOfflineRecognizer(cfg.Offline, profile.Locale, fsys, logger)
	defer offline.Close()

	speaker := tts.NewEspeak(cfg.Voice.Binary, profile.Voice, logger)

	var listeningCue application.Cue = &application.NoopCue{}
	if cfg.Audio.CueFile != "" {
		listeningCue = cue.NewSound(fsys, cfg.Audio.CueFile)
	}

	actions := application.NewActions(speaker, browser.NewSystem(logger), profile)
	router := application.NewRouter(application.DefaultCommandTable(actions, matchMode), logger)
	transcriber := application.NewTranscriber(online, offline, logger)

	assistant := application.NewAssistant(
		audioSource,
		waveforms,
		transcriber,
		router,
		speaker,
		listeningCue,
		profile,
		logger,
	)

	logger.Info("starting voice assistant",
		"audio_source", cfg.Audio.Source,
		"online", online.Name(),
		"offline", offline.Name(),
		"match", matchMode,
	)

	err = assistant.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info("shutting down")
	case errors.Is(err, domain.ErrMissingOfflineModel):
		logger.Error("offline speech model is missing", "error", err)
		os.Exit(1)
	default:
		logger.Error("assistant error", "error", err)
		os.Exit(1)
	}
}

func createAudioSource(cfg config.AudioConfig, fsys afero.Fs, logger *slog.Logger) application.AudioSource {
	listen := audio.DefaultListenConfig()
	listen.SampleRate = cfg.SampleRate
	listen.Calibration = parseDuration(cfg.Calibration, listen.Calibration, logger)
	listen.Timeout = parseDuration(cfg.ListenTimeout, listen.Timeout, logger)
	listen.PhraseLimit = parseDuration(cfg.PhraseLimit, listen.PhraseLimit, logger)
	listen.Pause = parseDuration(cfg.Pause, listen.Pause, logger)

	switch cfg.Source {
	case "microphone":
		return audio.NewMicrophoneSource(listen, logger)
	case "file":
		return audio.NewFileSource(fsys, cfg.FileDir, listen.Timeout)
	default:
		logger.Warn("unknown audio source, using microphone", "source", cfg.Source)
		return audio.NewMicrophoneSource(listen, logger)
	}
}

func createOnlineRecognizer(cfg config.RecognitionConfig, locale string, httpClient *http.Client, logger *slog.Logger) application.OnlineRecognizer {
	switch cfg.Online {
	case "google":
		return google.NewSpeechClient(cfg.Google.APIKey, locale, httpClient)
	case "openai":
		return openai.NewWhisperClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, locale, httpClient)
	default:
		logger.Warn("unknown online recognizer, using google", "online", cfg.Online)
		return google.NewSpeechClient(cfg.Google.APIKey, locale, httpClient)
	}
}

func createOfflineRecognizer(cfg config.OfflineConfig, locale string, fsys afero.Fs, logger *slog.Logger) offlineEngine {
	switch cfg.Engine {
	case "vosk":
		return vosk.NewRecognizer(fsys, cfg.ModelPath, logger)
	case "whisper":
		return whisper.NewRecognizer(fsys, cfg.ModelPath, locale, logger)
	default:
		logger.Warn("unknown offline engine, using vosk", "engine", cfg.Engine)
		return vosk.NewRecognizer(fsys, cfg.ModelPath, logger)
	}
}

func parseDuration(value string, fallback time.Duration, logger *slog.Logger) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn("invalid duration, using default", "error", err, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	}

	return slog.New(handler)
}
