package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SectionType string

const (
	SectionReading   SectionType = "reading"
	SectionListening SectionType = "listening"
	SectionWriting   SectionType = "writing"
	SectionSpeaking  SectionType = "speaking"
)

type ContentType string

const (
	ContentPassage ContentType = "passage"
	ContentAudio   ContentType = "audio"
)

// Section is an assembled exam section: ordered question groups, each
// optionally paired with one content block.
type Section struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	AssignmentID *uint       `json:"assignment_id" gorm:"index"`
	Title        string      `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	SectionType  SectionType `json:"section_type" gorm:"not null;size:20;index" validate:"required,section_type"`
	Instructions *string     `json:"instructions" gorm:"type:text"`
	Position     int         `json:"position" gorm:"default:0"`

	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	ContentBlocks  []ContentBlock  `json:"content_blocks" gorm:"foreignKey:SectionID"`
	QuestionGroups []QuestionGroup `json:"question_groups" gorm:"foreignKey:SectionID"`
}

func (Section) TableName() string {
	return "sections"
}

// ContentBlock is the stimulus shown alongside one or more question groups:
// a reading passage or an audio clip.
type ContentBlock struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	SectionID   uint        `json:"section_id" gorm:"not null;index"`
	ContentType ContentType `json:"content_type" gorm:"not null;size:20" validate:"required,oneof=passage audio"`
	Position    int         `json:"position" gorm:"default:0"`

	PassageTitle     *string `json:"passage_title" gorm:"size:500"`
	PassageContent   *string `json:"passage_content" gorm:"type:text"`
	PassageFootnotes *string `json:"passage_footnotes" gorm:"type:text"`
	AudioURL         *string `json:"audio_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContentBlock) TableName() string {
	return "content_blocks"
}

// QuestionGroup owns an ordered slice of question ids. Once the section is
// flattened for preview, each group covers a contiguous run of the global
// numbering space.
type QuestionGroup struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	SectionID       uint    `json:"section_id" gorm:"not null;index"`
	Title           *string `json:"title" gorm:"size:500"`
	Instructions    *string `json:"instructions" gorm:"type:text"`
	SubInstructions *string `json:"sub_instructions" gorm:"type:text"`
	ContentBlockID  *uint   `json:"content_block_id"`
	Position        int     `json:"position" gorm:"default:0"`

	QuestionIDs datatypes.JSONSlice[uint] `json:"question_ids" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuestionGroup) TableName() string {
	return "question_groups"
}

type AssignmentStatus string

const (
	AssignmentDraft     AssignmentStatus = "Draft"
	AssignmentPublished AssignmentStatus = "Published"
	AssignmentArchived  AssignmentStatus = "Archived"
)

// Assignment bundles the four section types into one deliverable exam.
type Assignment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string          `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Status      AssignmentStatus `json:"status" gorm:"default:Draft;index" validate:"omitempty,oneof=Draft Published Archived"`

	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Sections []Section `json:"sections" gorm:"foreignKey:AssignmentID"`

	// Computed, not stored
	SectionsCount int `json:"sections_count" gorm:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}
