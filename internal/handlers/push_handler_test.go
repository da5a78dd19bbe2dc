package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transcribe-api/internal/models"
	"transcribe-api/internal/services"
	"transcribe-api/pkg/recognition"
	"transcribe-api/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type workerFixture struct {
	router     *gin.Engine
	store      *storage.TestStore
	recognizer *recognition.TestRecognizer
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewTestStore("audio-bucket")
	recognizer := &recognition.TestRecognizer{
		Segments: []recognition.Segment{{Transcript: "hello world"}},
	}
	transcriber := services.NewTranscriberService(store, recognizer, "transcripts", zerolog.Nop())
	handler := NewPushHandler(transcriber, zerolog.Nop())

	router := gin.New()
	router.POST("/pubsub/push", handler.Receive)

	return &workerFixture{router: router, store: store, recognizer: recognizer}
}

func pushBody(t *testing.T, msg models.JobMessage) *bytes.Buffer {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	envelope := models.PushEnvelope{
		Message: models.PushMessage{
			Data:      payload,
			MessageID: "m-1",
		},
		Subscription: "projects/p/subscriptions/s",
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestPush(t *testing.T) {
	fx := newWorkerFixture(t)

	body := pushBody(t, models.JobMessage{
		JobID:            "job-1",
		Filename:         "audios/job-1_clip.wav",
		Bucket:           "audio-bucket",
		TranscriptFolder: "transcripts",
	})
	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "transcripts/job-1.txt")

	obj := fx.store.Object("transcripts/job-1.txt")
	require.NotNil(t, obj)
	require.Equal(t, "hello world\n", string(obj.Data))
}

func TestPush_EmptyEnvelope(t *testing.T) {
	fx := newWorkerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, fx.store.Len())
}

func TestPush_InvalidEnvelopeJSON(t *testing.T) {
	fx := newWorkerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPush_UndecodablePayload(t *testing.T) {
	fx := newWorkerFixture(t)

	envelope := models.PushEnvelope{
		Message: models.PushMessage{Data: []byte("not json"), MessageID: "m-1"},
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, fx.store.Len())
}

func TestPush_MissingJobID(t *testing.T) {
	fx := newWorkerFixture(t)

	body := pushBody(t, models.JobMessage{Filename: "audios/x.wav"})
	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	// Terminal rejection: no retry can fix a message without a job id.
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "MALFORMED_MESSAGE")
	require.Equal(t, 0, fx.store.Len())
}

func TestPush_RecognitionFailureTriggersRedelivery(t *testing.T) {
	fx := newWorkerFixture(t)
	fx.recognizer.Err = fmt.Errorf("backend unavailable")

	body := pushBody(t, models.JobMessage{
		JobID:    "job-1",
		Filename: "audios/job-1_clip.wav",
	})
	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 0, fx.store.Len())

	// A later redelivery of the same message succeeds.
	fx.recognizer.Err = nil
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/pubsub/push", pushBody(t, models.JobMessage{
		JobID:    "job-1",
		Filename: "audios/job-1_clip.wav",
	}))
	req.Header.Set("Content-Type", "application/json")
	fx.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fx.store.Object("transcripts/job-1.txt"))
}
