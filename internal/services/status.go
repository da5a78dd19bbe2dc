package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"transcribe-api/internal/models"
	"transcribe-api/pkg/errors"
	"transcribe-api/pkg/storage"
)

// downloadURLTTL is how long a generated transcript download link stays
// valid. The validity window is the only access control on transcripts.
const downloadURLTTL = 10 * time.Minute

// StatusService answers "is job X done?" by checking transcript existence.
// Job state is inferred from the object store, never cached, so every call
// reflects the store as it is right now.
type StatusService struct {
	store            storage.Store
	transcriptFolder string
}

func NewStatusService(store storage.Store, transcriptFolder string) *StatusService {
	return &StatusService{
		store:            store,
		transcriptFolder: transcriptFolder,
	}
}

// Status performs a single existence check against the transcript key and,
// on completion, returns a time-limited signed download URL.
func (s *StatusService) Status(ctx context.Context, jobID string) (*models.StatusResponse, error) {
	if !validJobID(jobID) {
		return nil, errors.Wrap(fmt.Errorf("job_id=%q", jobID), errors.ErrValidation)
	}
	key := TranscriptObjectKey(s.transcriptFolder, jobID)

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrInternalServer.Code, "failed to check transcript", errors.ErrInternalServer.Status)
	}
	if !exists {
		return &models.StatusResponse{Status: models.StatusPending}, nil
	}

	url, err := s.store.SignedURL(key, downloadURLTTL)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrInternalServer.Code, "failed to sign download URL", errors.ErrInternalServer.Status)
	}
	return &models.StatusResponse{
		Status:      models.StatusComplete,
		DownloadURL: url,
	}, nil
}

// Fetch materializes the transcript into a temporary local file and returns
// its path. Transcripts are small text files, so the copy is cheap.
func (s *StatusService) Fetch(ctx context.Context, jobID string) (string, error) {
	if !validJobID(jobID) {
		return "", errors.Wrap(fmt.Errorf("job_id=%q", jobID), errors.ErrValidation)
	}
	key := TranscriptObjectKey(s.transcriptFolder, jobID)

	data, err := s.store.Get(ctx, key)
	if goerrors.Is(err, storage.ErrNoObject) {
		return "", errors.Wrap(err, errors.ErrNotFound)
	}
	if err != nil {
		return "", errors.WrapError(err, errors.ErrInternalServer.Code, "failed to fetch transcript", errors.ErrInternalServer.Status)
	}

	path := filepath.Join(os.TempDir(), jobID+".txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.WrapError(err, errors.ErrInternalServer.Code, "failed to write transcript copy", errors.ErrInternalServer.Status)
	}
	return path, nil
}

// TranscriptObjectKey derives the storage key a finished transcript lives at.
func TranscriptObjectKey(folder, jobID string) string {
	return fmt.Sprintf("%s/%s.txt", folder, jobID)
}

// validJobID rejects identifiers that could escape the object key namespace
// or the local temp directory. Minted ids are UUIDs and always pass.
func validJobID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`)
}
