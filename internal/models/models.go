package models

// JobDescriptor is returned by ingestion so the client can show metadata and
// later trigger transcription. Filename is the audio object key.
type JobDescriptor struct {
	JobID                             string  `json:"job_id"`
	Filename                          string  `json:"filename"`
	AudioLengthSeconds                float64 `json:"audio_length_seconds"`
	EstimatedTranscriptionTimeSeconds float64 `json:"estimated_transcription_time_seconds"`
}

// JobMessage is the queue payload published by the dispatcher and consumed
// by the transcription worker. It exists only in flight.
type JobMessage struct {
	JobID            string `json:"job_id"`
	Filename         string `json:"filename"`
	Bucket           string `json:"bucket"`
	TranscriptFolder string `json:"transcript_folder"`
}

// DispatchResponse acknowledges that a transcription job was published.
type DispatchResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

// Job status values as surfaced to clients. There is no failed status: a job
// whose worker never completes is indistinguishable from one still running.
const (
	StatusPending  = "pending"
	StatusComplete = "complete"
)

// StatusResponse reports whether a transcript exists yet.
type StatusResponse struct {
	Status      string `json:"status"`
	DownloadURL string `json:"download_url,omitempty"`
}

// PushEnvelope is the wrapper Pub/Sub wraps around push-delivered messages.
// Data is base64 in the JSON wire form; encoding/json decodes it.
type PushEnvelope struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

type PushMessage struct {
	Data       []byte            `json:"data"`
	MessageID  string            `json:"messageId"`
	Attributes map[string]string `json:"attributes"`
}
