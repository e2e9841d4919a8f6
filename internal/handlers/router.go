package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

type HandlerManager struct {
	sectionHandler    *SectionHandler
	questionHandler   *QuestionHandler
	assignmentHandler *AssignmentHandler
	previewHandler    *PreviewHandler
}

func NewHandlerManager(
	sectionHandler *SectionHandler,
	questionHandler *QuestionHandler,
	assignmentHandler *AssignmentHandler,
	previewHandler *PreviewHandler,
) *HandlerManager {
	return &HandlerManager{
		sectionHandler:    sectionHandler,
		questionHandler:   questionHandler,
		assignmentHandler: assignmentHandler,
		previewHandler:    previewHandler,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, logger utils.Logger) {
	router.Use(utils.LoggerMiddleware(logger))

	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Section routes
		sections := v1.Group("/sections")
		{
			sections.POST("", hm.sectionHandler.CreateSection)
			sections.GET("", hm.sectionHandler.ListSections)
			sections.GET("/:id", hm.sectionHandler.GetSection)
			sections.GET("/:id/details", hm.sectionHandler.GetSectionWithDetails)
			sections.PUT("/:id", hm.sectionHandler.UpdateSection)
			sections.DELETE("/:id", hm.sectionHandler.DeleteSection)
			sections.GET("/:id/export", hm.sectionHandler.ExportSection)

			// Group management
			sections.POST("/:id/groups", hm.sectionHandler.CreateGroup)
			sections.PUT("/:id/groups/reorder", hm.sectionHandler.ReorderGroups)

			// Content block management
			sections.POST("/:id/blocks", hm.sectionHandler.CreateContentBlock)

			// Preview
			sections.POST("/:id/preview", hm.previewHandler.OpenPreview)
		}

		groups := v1.Group("/groups")
		{
			groups.PUT("/:group_id", hm.sectionHandler.UpdateGroup)
			groups.DELETE("/:group_id", hm.sectionHandler.DeleteGroup)
		}

		blocks := v1.Group("/blocks")
		{
			blocks.PUT("/:block_id", hm.sectionHandler.UpdateContentBlock)
			blocks.DELETE("/:block_id", hm.sectionHandler.DeleteContentBlock)
		}

		// Question routes
		questions := v1.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
			questions.POST("/export", hm.questionHandler.ExportQuestions)
		}

		// Assignment routes
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", hm.assignmentHandler.CreateAssignment)
			assignments.GET("", hm.assignmentHandler.ListAssignments)
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.GET("/:id/sections", hm.assignmentHandler.GetAssignmentWithSections)
			assignments.PUT("/:id", hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)
			assignments.POST("/:id/publish", hm.assignmentHandler.PublishAssignment)
			assignments.POST("/:id/archive", hm.assignmentHandler.ArchiveAssignment)
		}

		// Preview session routes
		previews := v1.Group("/previews")
		{
			previews.GET("/:preview_id", hm.previewHandler.GetPreviewView)
			previews.POST("/:preview_id/events", hm.previewHandler.ApplyPreviewEvent)
			previews.DELETE("/:preview_id", hm.previewHandler.ClosePreview)
		}
	}
}
