package services

import (
	"context"
	"fmt"
	"testing"

	"transcribe-api/internal/audio"
	"transcribe-api/internal/models"
	"transcribe-api/pkg/errors"
	"transcribe-api/pkg/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	seconds float64
	err     error
}

func (f fakeProber) Duration(context.Context, []byte) (float64, error) {
	return f.seconds, f.err
}

func TestSubmit(t *testing.T) {
	store := storage.NewTestStore("audio-bucket")
	svc := NewIngestionService(store, fakeProber{seconds: 10.0}, zerolog.Nop())

	desc, err := svc.Submit(context.Background(), []byte("RIFFdata"), "clip.wav", "audio/wav")
	require.NoError(t, err)

	_, err = uuid.Parse(desc.JobID)
	require.NoError(t, err, "job id must be a random UUID")
	require.Equal(t, fmt.Sprintf("audios/%s_clip.wav", desc.JobID), desc.Filename)
	require.InDelta(t, 10.0, desc.AudioLengthSeconds, 0.001)
	require.InDelta(t, 20.0, desc.EstimatedTranscriptionTimeSeconds, 0.001)

	obj := store.Object(desc.Filename)
	require.NotNil(t, obj)
	require.Equal(t, []byte("RIFFdata"), obj.Data)
	require.Equal(t, "audio/wav", obj.ContentType)
}

func TestSubmit_FreshIDs(t *testing.T) {
	store := storage.NewTestStore("audio-bucket")
	svc := NewIngestionService(store, fakeProber{seconds: 1.5}, zerolog.Nop())

	first, err := svc.Submit(context.Background(), []byte("a"), "same.wav", "audio/wav")
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), []byte("a"), "same.wav", "audio/wav")
	require.NoError(t, err)

	require.NotEqual(t, first.JobID, second.JobID, "ids must not derive from content")
}

func TestSubmit_DecodeError(t *testing.T) {
	store := storage.NewTestStore("audio-bucket")
	svc := NewIngestionService(store, fakeProber{err: fmt.Errorf("cannot decode input")}, zerolog.Nop())

	_, err := svc.Submit(context.Background(), []byte("not audio"), "clip.wav", "audio/wav")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrDecode))
	require.Equal(t, 0, store.Len(), "nothing may be stored for undecodable audio")
}

func TestSubmit_ProbeUnavailable(t *testing.T) {
	store := storage.NewTestStore("audio-bucket")
	svc := NewIngestionService(store, fakeProber{err: audio.ErrProbeUnavailable}, zerolog.Nop())

	_, err := svc.Submit(context.Background(), []byte("RIFFdata"), "clip.wav", "audio/wav")
	require.Error(t, err)
	require.False(t, errors.Is(err, errors.ErrDecode), "a missing probe binary is not the client's fault")
	require.True(t, errors.Is(err, errors.ErrInternalServer))
	require.Equal(t, 0, store.Len())
}

func TestSubmit_ThenStatusIsPending(t *testing.T) {
	store := storage.NewTestStore("audio-bucket")
	ingest := NewIngestionService(store, fakeProber{seconds: 3.0}, zerolog.Nop())
	status := NewStatusService(store, "transcripts")

	desc, err := ingest.Submit(context.Background(), []byte("a"), "clip.wav", "audio/wav")
	require.NoError(t, err)

	resp, err := status.Status(context.Background(), desc.JobID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, resp.Status)
	require.Empty(t, resp.DownloadURL)
}
