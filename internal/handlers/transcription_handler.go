package handlers

import (
	"io"
	"net/http"

	"transcribe-api/internal/models"
	"transcribe-api/internal/services"
	"transcribe-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type TranscriptionHandler struct {
	ingestion  *services.IngestionService
	dispatcher *services.DispatcherService
	status     *services.StatusService
}

func NewTranscriptionHandler(ingestion *services.IngestionService, dispatcher *services.DispatcherService, status *services.StatusService) *TranscriptionHandler {
	return &TranscriptionHandler{
		ingestion:  ingestion,
		dispatcher: dispatcher,
		status:     status,
	}
}

// Upload accepts a multipart audio file, stores it and returns the job
// descriptor. It deliberately does not enqueue anything; the client decides
// when to trigger transcription.
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrValidation.Code,
			Message: "No file provided",
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrValidation.Code,
			Message: "Failed to open uploaded file",
		})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
			Error:   errors.ErrInternalServer.Code,
			Message: "Failed to read uploaded file",
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	desc, err := h.ingestion.Submit(c.Request.Context(), data, fileHeader.Filename, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, desc)
}

// Transcribe triggers the transcription of a previously uploaded file by
// publishing a job message to the queue.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	jobID := param(c, "job_id")
	filename := param(c, "filename")
	if jobID == "" || filename == "" {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrValidation.Code,
			Message: "job_id and filename are required",
		})
		return
	}

	if _, err := h.dispatcher.Dispatch(c.Request.Context(), jobID, filename); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DispatchResponse{
		Status: "transcription triggered",
		JobID:  jobID,
	})
}

// Status reports whether the transcript for a job exists yet and, if so,
// returns a time-limited download URL.
func (h *TranscriptionHandler) Status(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrValidation.Code,
			Message: "job_id is required",
		})
		return
	}

	resp, err := h.status.Status(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Download streams the transcript back as a file attachment.
func (h *TranscriptionHandler) Download(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error:   errors.ErrValidation.Code,
			Message: "job_id is required",
		})
		return
	}

	path, err := h.status.Fetch(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errors.ErrorResponse{
				Error:   errors.ErrNotFound.Code,
				Message: "Transcript not ready",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.FileAttachment(path, jobID+".txt")
}

// param reads a request parameter from the query string or form body.
func param(c *gin.Context, name string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return c.PostForm(name)
}
