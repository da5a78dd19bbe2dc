package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	GCP    GCPConfig
	App    AppConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// GCPConfig holds the storage bucket, queue topic and transcript folder
// identifiers. Defaults match the original deployment.
type GCPConfig struct {
	ProjectID        string
	AudioBucket      string
	PubsubTopic      string
	TranscriptFolder string
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

// Load reads configuration from environment variables with fixed fallbacks.
func Load() *Config {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_READ_TIMEOUT", 60)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
	viper.SetDefault("SERVER_IDLE_TIMEOUT", 120)
	viper.SetDefault("GCP_PROJECT", "audio-trad1")
	viper.SetDefault("AUDIO_BUCKET", "audio-trad1-audio-files")
	viper.SetDefault("PUBSUB_TOPIC", "audio-transcription-topic")
	viper.SetDefault("TRANSCRIPT_FOLDER", "transcripts")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	return &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			ReadTimeout:  viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetInt("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetInt("SERVER_IDLE_TIMEOUT"),
		},
		GCP: GCPConfig{
			ProjectID:        viper.GetString("GCP_PROJECT"),
			AudioBucket:      viper.GetString("AUDIO_BUCKET"),
			PubsubTopic:      viper.GetString("PUBSUB_TOPIC"),
			TranscriptFolder: viper.GetString("TRANSCRIPT_FOLDER"),
		},
		App: AppConfig{
			Environment: viper.GetString("APP_ENV"),
			LogLevel:    viper.GetString("LOG_LEVEL"),
		},
	}
}
