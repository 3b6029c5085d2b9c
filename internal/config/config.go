package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Audio     AudioConfig
	Synthesis SynthesisConfig
	Backends  BackendsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AudioConfig struct {
	OutputDir string
}

type SynthesisConfig struct {
	Timeout     time.Duration
	HistoryPage int
}

type BackendsConfig struct {
	Espeak     EspeakConfig
	GTTS       GTTSConfig
	OpenAI     OpenAIConfig
	ElevenLabs ElevenLabsConfig
	Coqui      CoquiConfig
}

type EspeakConfig struct {
	BinPath string // default: "espeak-ng"
}

type GTTSConfig struct {
	BinPath string // default: "gtts-cli"
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string // default: "tts-1"
}

type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.elevenlabs.io"
	ModelID string // default: "eleven_multilingual_v2"
}

type CoquiConfig struct {
	BinPath    string // default: "tts"
	ModelName  string // default: "tts_models/en/ljspeech/tacotron2-DDC"
	SpeakerWav string // optional reference clip for voice cloning
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeoutSecs, err := getEnvInt("SYNTHESIS_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNTHESIS_TIMEOUT_SECONDS: %w", err)
	}

	historyPage, err := getEnvInt("HISTORY_PAGE_SIZE", 50)
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_PAGE_SIZE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Audio: AudioConfig{
			OutputDir: getEnv("AUDIO_OUTPUT_DIR", "audio_outputs"),
		},
		Synthesis: SynthesisConfig{
			Timeout:     time.Duration(timeoutSecs) * time.Second,
			HistoryPage: historyPage,
		},
		Backends: BackendsConfig{
			Espeak: EspeakConfig{
				BinPath: getEnv("ESPEAK_BIN", "espeak-ng"),
			},
			GTTS: GTTSConfig{
				BinPath: getEnv("GTTS_BIN", "gtts-cli"),
			},
			OpenAI: OpenAIConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				BaseURL: getEnv("OPENAI_TTS_BASE_URL", ""),
				Model:   getEnv("OPENAI_TTS_MODEL", "tts-1"),
			},
			ElevenLabs: ElevenLabsConfig{
				APIKey:  getEnv("ELEVENLABS_API_KEY", ""),
				BaseURL: getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
				ModelID: getEnv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
			},
			Coqui: CoquiConfig{
				BinPath:    getEnv("COQUI_BIN", "tts"),
				ModelName:  getEnv("COQUI_MODEL", "tts_models/en/ljspeech/tacotron2-DDC"),
				SpeakerWav: getEnv("COQUI_SPEAKER_WAV", ""),
			},
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("SERVER_PORT out of range: %d", c.Server.Port))
	}
	if c.Synthesis.Timeout <= 0 {
		problems = append(problems, "SYNTHESIS_TIMEOUT_SECONDS must be positive")
	}
	if c.Synthesis.HistoryPage <= 0 {
		problems = append(problems, "HISTORY_PAGE_SIZE must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
