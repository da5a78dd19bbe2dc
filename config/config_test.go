package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "audio-trad1", cfg.GCP.ProjectID)
	require.Equal(t, "audio-trad1-audio-files", cfg.GCP.AudioBucket)
	require.Equal(t, "audio-transcription-topic", cfg.GCP.PubsubTopic)
	require.Equal(t, "transcripts", cfg.GCP.TranscriptFolder)
	require.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("AUDIO_BUCKET", "override-bucket")
	t.Setenv("TRANSCRIPT_FOLDER", "texts")

	cfg := Load()

	require.Equal(t, "override-bucket", cfg.GCP.AudioBucket)
	require.Equal(t, "texts", cfg.GCP.TranscriptFolder)
}
