package handlers

import (
	"encoding/json"
	"net/http"

	"transcribe-api/internal/models"
	"transcribe-api/internal/services"
	"transcribe-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PushHandler receives Pub/Sub push deliveries. The response status controls
// redelivery: 2xx acknowledges the message, anything else makes the broker
// retry with its own backoff. Structurally invalid messages are rejected
// with 400 and logged so they can be inspected manually instead of cycling
// through redelivery forever.
type PushHandler struct {
	transcriber *services.TranscriberService
	log         zerolog.Logger
}

func NewPushHandler(transcriber *services.TranscriberService, log zerolog.Logger) *PushHandler {
	return &PushHandler{
		transcriber: transcriber,
		log:         log,
	}
}

func (h *PushHandler) Receive(c *gin.Context) {
	var envelope models.PushEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		h.log.Error().Err(err).Msg("invalid push envelope")
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrMalformedMessage.Code,
			Message: "Invalid Pub/Sub message format",
		})
		return
	}
	if len(envelope.Message.Data) == 0 {
		h.log.Error().Str("message_id", envelope.Message.MessageID).Msg("push envelope has no data")
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrMalformedMessage.Code,
			Message: "No data in Pub/Sub message",
		})
		return
	}

	var msg models.JobMessage
	if err := json.Unmarshal(envelope.Message.Data, &msg); err != nil {
		h.log.Error().Err(err).
			Str("message_id", envelope.Message.MessageID).
			Msg("undecodable job message payload")
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrMalformedMessage.Code,
			Message: "Invalid job message payload",
		})
		return
	}

	key, err := h.transcriber.Process(c.Request.Context(), &msg)
	if err != nil {
		if errors.Is(err, errors.ErrMalformedMessage) {
			// Terminal: redelivering a structurally invalid message can
			// never succeed.
			h.log.Error().Err(err).
				Str("message_id", envelope.Message.MessageID).
				Msg("rejecting malformed job message")
			c.JSON(http.StatusBadRequest, errors.ErrorResponse{
				Error:   errors.ErrMalformedMessage.Code,
				Message: err.Error(),
			})
			return
		}
		// Transient: non-2xx triggers broker redelivery.
		h.log.Error().Err(err).
			Str("job_id", msg.JobID).
			Msg("transcription attempt failed")
		c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
			Error:   errors.ErrInternalServer.Code,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "transcription complete",
		"transcript_file": key,
	})
}
