package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionFormat string

const (
	MCQSingle       QuestionFormat = "mcq_single"
	MCQMultiple     QuestionFormat = "mcq_multiple"
	TrueFalseNG     QuestionFormat = "true_false_ng"
	YesNoNG         QuestionFormat = "yes_no_ng"
	FillBlankTyping QuestionFormat = "fill_blank_typing"
	FillBlankDrag   QuestionFormat = "fill_blank_drag"
	TableCompletion QuestionFormat = "table_completion"
	Matching        QuestionFormat = "matching"
	HeadingMatching QuestionFormat = "heading_matching"
	Flowchart       QuestionFormat = "flowchart"
	MapLabeling     QuestionFormat = "map_labeling"
	Essay           QuestionFormat = "essay"
	EssayTask1      QuestionFormat = "essay_task1"
	EssayTask2      QuestionFormat = "essay_task2"
	SpeakingPart1   QuestionFormat = "speaking_part1"
	SpeakingPart2   QuestionFormat = "speaking_part2"
	SpeakingPart3   QuestionFormat = "speaking_part3"
)

// AllQuestionFormats lists every format the preview engine can render.
var AllQuestionFormats = []QuestionFormat{
	MCQSingle, MCQMultiple, TrueFalseNG, YesNoNG,
	FillBlankTyping, FillBlankDrag, TableCompletion,
	Matching, HeadingMatching, Flowchart, MapLabeling,
	Essay, EssayTask1, EssayTask2,
	SpeakingPart1, SpeakingPart2, SpeakingPart3,
}

// IsSpeaking reports whether the format belongs to the speaking family.
// Dispatch is prefix-based so future speaking variants route the same way.
func (f QuestionFormat) IsSpeaking() bool {
	return strings.HasPrefix(string(f), "speaking_")
}

// IsEssay reports whether the format belongs to the essay/writing family.
func (f QuestionFormat) IsEssay() bool {
	return f == Essay || f == EssayTask1 || f == EssayTask2
}

type SpeakingCategory string

const (
	SpeakingCategoryPart1 SpeakingCategory = "part1"
	SpeakingCategoryPart2 SpeakingCategory = "part2"
	SpeakingCategoryPart3 SpeakingCategory = "part3"
)

type Question struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	QuestionFormat  QuestionFormat `json:"question_format" gorm:"not null;size:50;index" validate:"required,question_format"`
	Title           *string        `json:"title" gorm:"size:500"`
	Content         string         `json:"content" gorm:"type:text"`
	Instructions    *string        `json:"instructions" gorm:"type:text"`
	SubInstructions *string        `json:"sub_instructions" gorm:"type:text"`

	// Format-specific structured payload. Decoded into a typed variant by
	// models.ParseOptions before any renderer sees it.
	OptionsData datatypes.JSON `json:"options_data" gorm:"type:jsonb"`

	// Number of numbered answer slots this single question occupies.
	ItemCount int `json:"item_count" gorm:"default:1" validate:"min=1,max=40"`

	AudioURL *string `json:"audio_url" gorm:"size:500"`

	// Speaking metadata
	SpeakingCategory *SpeakingCategory `json:"speaking_category" gorm:"size:20"`
	RelatedPart2ID   *uint             `json:"related_part2_id"`
	DepthLevel       *int              `json:"depth_level"`
	TargetBandMin    *float64          `json:"target_band_min"`
	TargetBandMax    *float64          `json:"target_band_max"`

	CreatedBy string         `json:"created_by" gorm:"size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// Items returns the question's item count, never below 1.
func (q *Question) Items() int {
	if q.ItemCount < 1 {
		return 1
	}
	return q.ItemCount
}

// UseSeparateNumbers reports whether multi-select answers spread across
// item_count consecutive numbers instead of a single comma-joined value.
func (q *Question) UseSeparateNumbers() bool {
	return q.QuestionFormat == MCQMultiple && q.Items() > 1
}
