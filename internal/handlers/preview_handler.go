package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/services"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

type PreviewHandler struct {
	BaseHandler
	previewService services.PreviewService
}

func NewPreviewHandler(previewService services.PreviewService, logger utils.Logger) *PreviewHandler {
	return &PreviewHandler{
		BaseHandler:    NewBaseHandler(logger),
		previewService: previewService,
	}
}

// OpenPreview starts a fresh preview session over a section
func (h *PreviewHandler) OpenPreview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Opening preview", "section_id", id)

	resp, err := h.previewService.Open(c.Request.Context(), id, requestUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ApplyPreviewEvent applies one candidate interaction to a session
func (h *PreviewHandler) ApplyPreviewEvent(c *gin.Context) {
	previewID := c.Param("preview_id")
	if previewID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid preview_id"})
		return
	}

	var event services.PreviewEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.previewService.Apply(c.Request.Context(), previewID, &event)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPreviewView renders the current view of a session
func (h *PreviewHandler) GetPreviewView(c *gin.Context) {
	previewID := c.Param("preview_id")
	if previewID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid preview_id"})
		return
	}

	resp, err := h.previewService.View(c.Request.Context(), previewID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClosePreview discards a session
func (h *PreviewHandler) ClosePreview(c *gin.Context) {
	previewID := c.Param("preview_id")
	if previewID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid preview_id"})
		return
	}

	if err := h.previewService.Close(c.Request.Context(), previewID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Preview closed"})
}
