package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"transcribe-api/internal/models"
	"transcribe-api/pkg/errors"
	"transcribe-api/pkg/queue"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	publisher := queue.NewTestPublisher()
	svc := NewDispatcherService(publisher, "audio-bucket", "transcripts", zerolog.Nop())

	id, err := svc.Dispatch(context.Background(), "job-1", "audios/job-1_clip.wav")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	messages := publisher.Messages()
	require.Len(t, messages, 1)

	var msg models.JobMessage
	require.NoError(t, json.Unmarshal(messages[0], &msg))
	require.Equal(t, "job-1", msg.JobID)
	require.Equal(t, "audios/job-1_clip.wav", msg.Filename)
	require.Equal(t, "audio-bucket", msg.Bucket)
	require.Equal(t, "transcripts", msg.TranscriptFolder)
}

func TestDispatch_DuplicatesTolerated(t *testing.T) {
	publisher := queue.NewTestPublisher()
	svc := NewDispatcherService(publisher, "audio-bucket", "transcripts", zerolog.Nop())

	_, err := svc.Dispatch(context.Background(), "job-1", "audios/job-1_clip.wav")
	require.NoError(t, err)
	_, err = svc.Dispatch(context.Background(), "job-1", "audios/job-1_clip.wav")
	require.NoError(t, err)

	require.Len(t, publisher.Messages(), 2)
}

func TestDispatch_RejectsPathTraversalJobID(t *testing.T) {
	publisher := queue.NewTestPublisher()
	svc := NewDispatcherService(publisher, "audio-bucket", "transcripts", zerolog.Nop())

	_, err := svc.Dispatch(context.Background(), "../escape", "audios/job-1_clip.wav")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrValidation))
	require.Empty(t, publisher.Messages(), "invalid job ids must never enter the queue")
}

func TestDispatch_PublishError(t *testing.T) {
	publisher := queue.NewTestPublisher()
	publisher.Err = fmt.Errorf("broker unavailable")
	svc := NewDispatcherService(publisher, "audio-bucket", "transcripts", zerolog.Nop())

	_, err := svc.Dispatch(context.Background(), "job-1", "audios/job-1_clip.wav")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrPublish))
}
