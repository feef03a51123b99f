package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screenguard/internal/domain"
	"screenguard/internal/service"
	"screenguard/internal/storage/local"
)

// ScreenshotHandler handles screenshot processing requests.
type ScreenshotHandler struct {
	pipeline service.PipelineService
	store    *local.Store
}

// NewScreenshotHandler creates a new ScreenshotHandler.
func NewScreenshotHandler(pipeline service.PipelineService, store *local.Store) *ScreenshotHandler {
	return &ScreenshotHandler{pipeline: pipeline, store: store}
}

// Process handles POST /process_screenshot/
//
// The upload is validated before any staging or external call: an unsupported
// extension is rejected with 400 and no temporary file is written. The staged
// copy is discarded on every exit path.
func (h *ScreenshotHandler) Process(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "image file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	ext, ok := domain.ImageExtension(header.Filename)
	if !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	path, err := h.store.Stage(file, ext)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to stage uploaded image")
		return
	}
	defer h.store.Discard(path)

	resp, err := h.pipeline.ProcessScreenshot(c.Request.Context(), path)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
