package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Assistant   AssistantConfig   `yaml:"assistant"`
	Voice       VoiceConfig       `yaml:"voice"`
	Audio       AudioConfig       `yaml:"audio"`
	Recognition RecognitionConfig `yaml:"recognition"`
	Offline     OfflineConfig     `yaml:"offline"`
	Commands    CommandsConfig    `yaml:"commands"`
	Log         LogConfig         `yaml:"log"`
}

type AssistantConfig struct {
	Name   string `yaml:"name"`
	Locale string `yaml:"locale"`
}

type VoiceConfig struct {
	Binary string `yaml:"binary"`
	Voice  string `yaml:"voice"`
}

type AudioConfig struct {
	Source        string `yaml:"source"`
	SampleRate    int    `yaml:"sample_rate"`
	Calibration   string `yaml:"calibration"`
	ListenTimeout string `yaml:"listen_timeout"`
	PhraseLimit   string `yaml:"phrase_limit"`
	Pause         string `yaml:"pause"`
	WaveformPath  string `yaml:"waveform_path"`
	FileDir       string `yaml:"file_dir"`
	CueFile       string `yaml:"cue_file"`
}

type RecognitionConfig struct {
	Online  string       `yaml:"online"`
	Timeout string       `yaml:"timeout"`
	Proxy   string       `yaml:"proxy"`
	Google  GoogleConfig `yaml:"google"`
	OpenAI  OpenAIConfig `yaml:"openai"`
}

type GoogleConfig struct {
	APIKey string `yaml:"api_key"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OfflineConfig struct {
	Engine    string `yaml:"engine"`
	ModelPath string `yaml:"model_path"`
}

type CommandsConfig struct {
	Match string `yaml:"match"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references before decoding.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Assistant.Locale == "" {
		c.Assistant.Locale = "ru"
	}
	if c.Voice.Binary == "" {
		c.Voice.Binary = "espeak-ng"
	}
	if c.Voice.Voice == "" {
		c.Voice.Voice = c.Assistant.Locale
	}
	if c.Audio.Source == "" {
		c.Audio.Source = "microphone"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Calibration == "" {
		c.Audio.Calibration = "1s"
	}
	if c.Audio.ListenTimeout == "" {
		c.Audio.ListenTimeout = "5s"
	}
	if c.Audio.PhraseLimit == "" {
		c.Audio.PhraseLimit = "5s"
	}
	if c.Audio.Pause == "" {
		c.Audio.Pause = "800ms"
	}
	if c.Audio.WaveformPath == "" {
		c.Audio.WaveformPath = "microphone-results.wav"
	}
	if c.Audio.FileDir == "" {
		c.Audio.FileDir = "./audio"
	}
	if c.Recognition.Online == "" {
		c.Recognition.Online = "google"
	}
	if c.Recognition.Timeout == "" {
		c.Recognition.Timeout = "30s"
	}
	if c.Recognition.OpenAI.Model == "" {
		c.Recognition.OpenAI.Model = "whisper-1"
	}
	if c.Offline.Engine == "" {
		c.Offline.Engine = "vosk"
	}
	if c.Offline.ModelPath == "" {
		c.Offline.ModelPath = "models/vosk-model-small-ru-0.4"
	}
	if c.Commands.Match == "" {
		c.Commands.Match = "exact"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
