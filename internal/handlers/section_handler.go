package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/services"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

type SectionHandler struct {
	BaseHandler
	sectionService services.SectionService
	exportService  services.ExportService
}

func NewSectionHandler(sectionService services.SectionService, exportService services.ExportService, logger utils.Logger) *SectionHandler {
	return &SectionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sectionService: sectionService,
		exportService:  exportService,
	}
}

// CreateSection creates a new exam section
func (h *SectionHandler) CreateSection(c *gin.Context) {
	h.LogRequest(c, "Creating section")

	var req services.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), &req, requestUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// GetSection retrieves a section by ID
func (h *SectionHandler) GetSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	section, err := h.sectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// GetSectionWithDetails retrieves a section with groups and content blocks
func (h *SectionHandler) GetSectionWithDetails(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	section, err := h.sectionService.GetWithDetails(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// UpdateSection updates section metadata
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// DeleteSection deletes a section with its groups and content blocks
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.sectionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Section deleted"})
}

// ListSections lists sections with filters
func (h *SectionHandler) ListSections(c *gin.Context) {
	var filters repositories.SectionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}
	if t := c.Query("section_type"); t != "" {
		sectionType := models.SectionType(t)
		filters.SectionType = &sectionType
	}

	sections, total, err := h.sectionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: sections, Total: total})
}

// ===== QUESTION GROUPS =====

// CreateGroup adds a question group to a section
func (h *SectionHandler) CreateGroup(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	group, err := h.sectionService.CreateGroup(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// UpdateGroup updates a question group
func (h *SectionHandler) UpdateGroup(c *gin.Context) {
	groupID := h.parseIDParam(c, "group_id")
	if groupID == 0 {
		return
	}

	var req services.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	group, err := h.sectionService.UpdateGroup(c.Request.Context(), groupID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup removes a question group
func (h *SectionHandler) DeleteGroup(c *gin.Context) {
	groupID := h.parseIDParam(c, "group_id")
	if groupID == 0 {
		return
	}
	if err := h.sectionService.DeleteGroup(c.Request.Context(), groupID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Question group deleted"})
}

// ReorderGroups rewrites group positions inside a section
func (h *SectionHandler) ReorderGroups(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req struct {
		Orders []repositories.GroupOrder `json:"orders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.sectionService.ReorderGroups(c.Request.Context(), id, req.Orders); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Question groups reordered"})
}

// ===== CONTENT BLOCKS =====

// CreateContentBlock adds a passage or audio block to a section
func (h *SectionHandler) CreateContentBlock(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ContentBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	block, err := h.sectionService.CreateContentBlock(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// UpdateContentBlock updates a content block
func (h *SectionHandler) UpdateContentBlock(c *gin.Context) {
	blockID := h.parseIDParam(c, "block_id")
	if blockID == 0 {
		return
	}

	var req services.ContentBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	block, err := h.sectionService.UpdateContentBlock(c.Request.Context(), blockID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteContentBlock removes a content block, detaching it from groups
func (h *SectionHandler) DeleteContentBlock(c *gin.Context) {
	blockID := h.parseIDParam(c, "block_id")
	if blockID == 0 {
		return
	}
	if err := h.sectionService.DeleteContentBlock(c.Request.Context(), blockID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Content block deleted"})
}

// ===== EXPORT =====

// ExportSection downloads the section as an xlsx workbook
func (h *SectionHandler) ExportSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	data, err := h.exportService.ExportSectionToExcel(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("section_%d.xlsx", id)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
