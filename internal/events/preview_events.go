package events

import (
	"time"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

type EventType string

const (
	// Preview lifecycle events
	EventPreviewOpened EventType = "preview.opened"
	EventPreviewClosed EventType = "preview.closed"

	// Preview interaction events
	EventRecordingSubmitted EventType = "preview.recording_submitted"

	// Authoring events
	EventSectionPublished    EventType = "section.published"
	EventAssignmentPublished EventType = "assignment.published"
)

// AuthoringEvent is the envelope for every event this service emits.
type AuthoringEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type PreviewOpenedEvent struct {
	PreviewID   string             `json:"preview_id"`
	SectionID   uint               `json:"section_id"`
	SectionType models.SectionType `json:"section_type"`
	TotalItems  int                `json:"total_items"`
	OpenedBy    string             `json:"opened_by,omitempty"`
}

type PreviewClosedEvent struct {
	PreviewID string `json:"preview_id"`
	SectionID uint   `json:"section_id"`
}

type RecordingSubmittedEvent struct {
	PreviewID    string `json:"preview_id"`
	QuestionID   uint   `json:"question_id"`
	SubQuestion  int    `json:"sub_question"`
	RecordingURL string `json:"recording_url,omitempty"`
}

type SectionPublishedEvent struct {
	SectionID   uint               `json:"section_id"`
	SectionType models.SectionType `json:"section_type"`
	Title       string             `json:"title"`
}

type AssignmentPublishedEvent struct {
	AssignmentID uint   `json:"assignment_id"`
	Title        string `json:"title"`
	Sections     int    `json:"sections"`
}
