package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// The raw options_data column is a free-form JSON bag whose shape depends on
// question_format. ParseOptions converts it into exactly one typed variant at
// the boundary so renderers never touch raw JSON. Missing or malformed
// payloads decode to zero-value variants; renderers are responsible for
// showing a placeholder when the variant carries no usable data.

type InputMode string

const (
	InputModeTyping InputMode = "typing"
	InputModeDrag   InputMode = "drag"
)

type DisplayMode string

const (
	DisplayLettered DisplayMode = "lettered"
	DisplayFullRow  DisplayMode = "full_row"
)

type MCQChoice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type MCQOptions struct {
	Options       []MCQChoice `json:"options"`
	DisplayMode   DisplayMode `json:"displayMode"`
	MaxSelections int         `json:"maxSelections"`
}

type TFNGStatement struct {
	Text string `json:"text"`
}

type TFNGOptions struct {
	Items []TFNGStatement `json:"items"`

	// Legacy payloads use "statements" instead of "items".
	Statements []TFNGStatement `json:"statements"`
}

// AllStatements merges the two historical payload keys, items first.
func (o TFNGOptions) AllStatements() []TFNGStatement {
	if len(o.Items) > 0 {
		return o.Items
	}
	return o.Statements
}

type FillBlankOptions struct {
	WordBank       []string  `json:"word_bank"`
	AllowDuplicate bool      `json:"allow_duplicate"`
	InputMode      InputMode `json:"input_mode"`
}

type MatchingOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type MatchingStatement struct {
	Text string `json:"text"`
}

type MatchingOptions struct {
	Options        []MatchingOption    `json:"options"`
	Items          []MatchingStatement `json:"items"`
	AllowDuplicate bool                `json:"allowDuplicate"`

	// Layout distinguishes pill assignment from inline passage blanks
	// explicitly. When empty, the shape is sniffed from items + content.
	Layout string `json:"layout"`
}

const LayoutHeadingPassage = "heading_passage"

type FlowNodeType string

const (
	FlowNodeStart    FlowNodeType = "start"
	FlowNodeProcess  FlowNodeType = "process"
	FlowNodeDecision FlowNodeType = "decision"
	FlowNodeEnd      FlowNodeType = "end"
)

type FlowNode struct {
	Row     int          `json:"row"`
	Col     int          `json:"col"`
	Type    FlowNodeType `json:"type"`
	Content string       `json:"content"`
	Label   string       `json:"label"`
}

type FlowchartOptions struct {
	Nodes []FlowNode `json:"nodes"`
}

type MapLabelingOptions struct {
	ImageURL string              `json:"image_url"`
	Labels   []string            `json:"labels"`
	Items    []MatchingStatement `json:"items"`
}

// DefaultMapLabels is used when a map-labeling payload carries no label list.
var DefaultMapLabels = []string{"A", "B", "C", "D", "E", "F"}

type EssayOptions struct {
	MinWords int `json:"min_words"`
}

type SpeakingSubQuestion struct {
	Prompt   string  `json:"prompt"`
	AudioURL *string `json:"audio_url"`
}

type SpeakingOptions struct {
	SubQuestions        []SpeakingSubQuestion `json:"sub_questions"`
	PrepTimeSeconds     int                   `json:"prep_time_seconds"`
	SpeakingTimeSeconds int                   `json:"speaking_time_seconds"`
	WaitForAudio        bool                  `json:"wait_for_audio"`
}

// QuestionOptions is the tagged union: exactly one variant pointer is non-nil
// for a recognized format.
type QuestionOptions struct {
	Format QuestionFormat

	MCQ       *MCQOptions
	TFNG      *TFNGOptions
	FillBlank *FillBlankOptions
	Matching  *MatchingOptions
	Flowchart *FlowchartOptions
	MapLabel  *MapLabelingOptions
	Essay     *EssayOptions
	Speaking  *SpeakingOptions
}

// ParseOptions decodes options_data into the variant for the given format.
// Decoding never fails hard: an unparseable payload yields the zero-value
// variant, matching the render-placeholder-not-crash contract.
func ParseOptions(format QuestionFormat, raw datatypes.JSON) QuestionOptions {
	opts := QuestionOptions{Format: format}

	decode := func(dest any) {
		if len(raw) == 0 {
			return
		}
		// Errors intentionally discarded: fall through to zero values.
		_ = json.Unmarshal(raw, dest)
	}

	switch {
	case format == MCQSingle || format == MCQMultiple:
		v := &MCQOptions{}
		decode(v)
		if v.DisplayMode == "" {
			v.DisplayMode = DisplayLettered
		}
		opts.MCQ = v
	case format == TrueFalseNG || format == YesNoNG:
		v := &TFNGOptions{}
		decode(v)
		opts.TFNG = v
	case format == FillBlankTyping || format == FillBlankDrag || format == TableCompletion:
		v := &FillBlankOptions{}
		decode(v)
		if v.InputMode == "" {
			if format == FillBlankDrag {
				v.InputMode = InputModeDrag
			} else {
				v.InputMode = InputModeTyping
			}
		}
		opts.FillBlank = v
	case format == Matching || format == HeadingMatching:
		v := &MatchingOptions{}
		decode(v)
		opts.Matching = v
	case format == Flowchart:
		v := &FlowchartOptions{}
		decode(v)
		opts.Flowchart = v
	case format == MapLabeling:
		v := &MapLabelingOptions{}
		decode(v)
		if len(v.Labels) == 0 {
			v.Labels = append([]string(nil), DefaultMapLabels...)
		}
		opts.MapLabel = v
	case format.IsEssay():
		v := &EssayOptions{}
		decode(v)
		opts.Essay = v
	case format.IsSpeaking():
		v := &SpeakingOptions{}
		decode(v)
		opts.Speaking = v
	}

	return opts
}
