package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"transcribe-api/internal/models"
	"transcribe-api/pkg/errors"
	"transcribe-api/pkg/recognition"
	"transcribe-api/pkg/storage"

	"github.com/rs/zerolog"
)

// recognitionTimeout bounds a single recognition call. On expiry the
// invocation fails and the broker redelivers.
const recognitionTimeout = 600 * time.Second

// TranscriberService executes one pushed transcription job per invocation.
// It holds no state between attempts: every invocation is self-contained,
// and the transcript write is an unconditional overwrite, so duplicate
// deliveries of the same job are safe.
type TranscriberService struct {
	store            storage.Store
	recognizer       recognition.Recognizer
	transcriptFolder string
	timeout          time.Duration
	log              zerolog.Logger
}

func NewTranscriberService(store storage.Store, recognizer recognition.Recognizer, transcriptFolder string, log zerolog.Logger) *TranscriberService {
	return &TranscriberService{
		store:            store,
		recognizer:       recognizer,
		transcriptFolder: transcriptFolder,
		timeout:          recognitionTimeout,
		log:              log,
	}
}

// Process recognizes the job's audio object and writes the transcript.
// It returns the transcript key on success. Errors other than
// ErrMalformedMessage must be surfaced as non-2xx so the broker retries.
func (s *TranscriberService) Process(ctx context.Context, msg *models.JobMessage) (string, error) {
	if !validJobID(msg.JobID) || msg.Filename == "" {
		return "", errors.Wrap(fmt.Errorf("job_id=%q filename=%q", msg.JobID, msg.Filename), errors.ErrMalformedMessage)
	}

	bucket := msg.Bucket
	if bucket == "" {
		bucket = s.store.Bucket()
	}
	folder := msg.TranscriptFolder
	if folder == "" {
		folder = s.transcriptFolder
	}
	audioURI := fmt.Sprintf("gs://%s/%s", bucket, msg.Filename)

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	segments, err := s.recognizer.Recognize(rctx, audioURI)
	if err != nil {
		// The backend may report the expired deadline as its own status
		// error rather than context.DeadlineExceeded, so check the
		// recognition context too.
		if goerrors.Is(err, context.DeadlineExceeded) || rctx.Err() == context.DeadlineExceeded {
			return "", errors.Wrap(err, errors.ErrRecognitionTimeout)
		}
		return "", errors.Wrap(err, errors.ErrRecognition)
	}

	var transcript strings.Builder
	for _, segment := range segments {
		transcript.WriteString(segment.Transcript)
		transcript.WriteByte('\n')
	}

	key := TranscriptObjectKey(folder, msg.JobID)
	if err := s.store.Put(ctx, key, []byte(transcript.String()), "text/plain"); err != nil {
		return "", errors.WrapError(err, errors.ErrInternalServer.Code, "failed to store transcript", errors.ErrInternalServer.Status)
	}

	s.log.Info().
		Str("job_id", msg.JobID).
		Str("transcript_file", key).
		Int("segments", len(segments)).
		Msg("transcription complete")
	return key, nil
}
