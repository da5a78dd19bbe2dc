package services

import (
	"context"
	"encoding/json"
	"fmt"

	"transcribe-api/internal/models"
	"transcribe-api/pkg/errors"
	"transcribe-api/pkg/queue"

	"github.com/rs/zerolog"
)

// DispatcherService publishes transcription jobs to the queue. Publishing is
// synchronous from the caller's point of view and is never retried here; a
// client that sees a publish failure retries dispatch explicitly. Multiple
// dispatches of the same job are tolerated and only cause redundant work.
type DispatcherService struct {
	publisher        queue.Publisher
	bucket           string
	transcriptFolder string
	log              zerolog.Logger
}

func NewDispatcherService(publisher queue.Publisher, bucket, transcriptFolder string, log zerolog.Logger) *DispatcherService {
	return &DispatcherService{
		publisher:        publisher,
		bucket:           bucket,
		transcriptFolder: transcriptFolder,
		log:              log,
	}
}

// Dispatch publishes a JobMessage and blocks until the broker acknowledges
// it, returning the broker-assigned message id.
func (s *DispatcherService) Dispatch(ctx context.Context, jobID, audioKey string) (string, error) {
	if !validJobID(jobID) {
		return "", errors.Wrap(fmt.Errorf("job_id=%q", jobID), errors.ErrValidation)
	}
	msg := models.JobMessage{
		JobID:            jobID,
		Filename:         audioKey,
		Bucket:           s.bucket,
		TranscriptFolder: s.transcriptFolder,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrInternalServer.Code, "failed to encode job message", errors.ErrInternalServer.Status)
	}

	id, err := s.publisher.Publish(ctx, data)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPublish)
	}

	s.log.Info().
		Str("job_id", jobID).
		Str("message_id", id).
		Msg("transcription job dispatched")
	return id, nil
}
