package services

import (
	"context"
	goerrors "errors"
	"fmt"

	"transcribe-api/internal/audio"
	"transcribe-api/internal/models"
	"transcribe-api/pkg/errors"
	"transcribe-api/pkg/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// estimatedTimeMultiplier is the rough approximation of transcription time
// as a multiple of audio duration.
const estimatedTimeMultiplier = 2.0

// IngestionService accepts raw audio, probes its duration and stores it.
// Submission never touches the queue; dispatch is a separate client call.
type IngestionService struct {
	store  storage.Store
	prober audio.Prober
	log    zerolog.Logger
}

func NewIngestionService(store storage.Store, prober audio.Prober, log zerolog.Logger) *IngestionService {
	return &IngestionService{
		store:  store,
		prober: prober,
		log:    log,
	}
}

// Submit stores the uploaded audio under a fresh job id and returns the job
// descriptor. The only side effect is a single object put.
func (s *IngestionService) Submit(ctx context.Context, data []byte, filename, contentType string) (*models.JobDescriptor, error) {
	duration, err := s.prober.Duration(ctx, data)
	if err != nil {
		if goerrors.Is(err, audio.ErrProbeUnavailable) {
			return nil, errors.WrapError(err, errors.ErrInternalServer.Code, "audio probe unavailable", errors.ErrInternalServer.Status)
		}
		return nil, errors.Wrap(err, errors.ErrDecode)
	}

	jobID := uuid.New().String()
	key := AudioObjectKey(jobID, filename)

	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return nil, errors.WrapError(err, errors.ErrInternalServer.Code, "failed to store audio", errors.ErrInternalServer.Status)
	}

	s.log.Info().
		Str("job_id", jobID).
		Str("key", key).
		Float64("duration_seconds", duration).
		Msg("audio ingested")

	return &models.JobDescriptor{
		JobID:                             jobID,
		Filename:                          key,
		AudioLengthSeconds:                duration,
		EstimatedTranscriptionTimeSeconds: duration * estimatedTimeMultiplier,
	}, nil
}

// AudioObjectKey derives the storage key for an uploaded audio file.
func AudioObjectKey(jobID, filename string) string {
	return fmt.Sprintf("audios/%s_%s", jobID, filename)
}
