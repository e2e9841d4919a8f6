package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// QuestionValidator handles format-specific validation of authored questions.
// The preview engine is deliberately lenient (placeholder instead of error);
// the authoring surface is where malformed payloads get rejected.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Content == "" && !question.QuestionFormat.IsSpeaking() {
		return fmt.Errorf("question content is required")
	}

	if question.Items() > 40 {
		return fmt.Errorf("item_count cannot exceed 40")
	}

	return v.ValidateOptions(question.QuestionFormat, question.OptionsData)
}

// ValidateOptions validates options_data based on question format
func (v *QuestionValidator) ValidateOptions(format models.QuestionFormat, raw []byte) error {
	switch {
	case format == models.MCQSingle || format == models.MCQMultiple:
		return v.validateMCQOptions(raw)
	case format == models.TrueFalseNG || format == models.YesNoNG:
		return v.validateTFNGOptions(raw)
	case format == models.FillBlankTyping || format == models.FillBlankDrag || format == models.TableCompletion:
		return v.validateFillBlankOptions(format, raw)
	case format == models.Matching || format == models.HeadingMatching:
		return v.validateMatchingOptions(raw)
	case format == models.Flowchart:
		return v.validateFlowchartOptions(raw)
	case format == models.MapLabeling:
		return v.validateMapLabelingOptions(raw)
	case format.IsEssay():
		return v.validateEssayOptions(raw)
	case format.IsSpeaking():
		return v.validateSpeakingOptions(raw)
	default:
		return fmt.Errorf("unsupported question format: %s", format)
	}
}

func (v *QuestionValidator) validateMCQOptions(raw []byte) error {
	var opts models.MCQOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid mcq options: %w", err)
	}

	if len(opts.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}
	if len(opts.Options) > 12 {
		return fmt.Errorf("cannot have more than 12 options")
	}

	labels := make(map[string]bool)
	for _, option := range opts.Options {
		if option.Label == "" {
			return fmt.Errorf("option label cannot be empty")
		}
		if labels[option.Label] {
			return fmt.Errorf("duplicate option label: %s", option.Label)
		}
		labels[option.Label] = true
	}

	if opts.MaxSelections < 0 {
		return fmt.Errorf("maxSelections cannot be negative")
	}
	if opts.MaxSelections > len(opts.Options) {
		return fmt.Errorf("maxSelections cannot exceed option count")
	}

	return nil
}

func (v *QuestionValidator) validateTFNGOptions(raw []byte) error {
	var opts models.TFNGOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid true/false/not-given options: %w", err)
	}
	// An empty statement list is allowed: the renderer falls back to the
	// question content repeated item_count times.
	return nil
}

func (v *QuestionValidator) validateFillBlankOptions(format models.QuestionFormat, raw []byte) error {
	var opts models.FillBlankOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid fill-blank options: %w", err)
	}

	if opts.InputMode != "" && opts.InputMode != models.InputModeTyping && opts.InputMode != models.InputModeDrag {
		return fmt.Errorf("input_mode must be typing or drag")
	}

	dragMode := opts.InputMode == models.InputModeDrag || format == models.FillBlankDrag
	if dragMode && len(opts.WordBank) == 0 {
		return fmt.Errorf("drag mode requires a word_bank")
	}

	for i, word := range opts.WordBank {
		if strings.TrimSpace(word) == "" {
			return fmt.Errorf("word_bank entry %d cannot be blank", i+1)
		}
	}

	return nil
}

func (v *QuestionValidator) validateMatchingOptions(raw []byte) error {
	var opts models.MatchingOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid matching options: %w", err)
	}

	if len(opts.Options) == 0 {
		return fmt.Errorf("must have at least 1 matching option")
	}

	labels := make(map[string]bool)
	for _, option := range opts.Options {
		if option.Label == "" {
			return fmt.Errorf("matching option label cannot be empty")
		}
		if labels[option.Label] {
			return fmt.Errorf("duplicate matching option label: %s", option.Label)
		}
		labels[option.Label] = true
	}

	if opts.Layout != "" && opts.Layout != models.LayoutHeadingPassage {
		return fmt.Errorf("unknown matching layout: %s", opts.Layout)
	}

	return nil
}

func (v *QuestionValidator) validateFlowchartOptions(raw []byte) error {
	var opts models.FlowchartOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid flowchart options: %w", err)
	}

	for i, node := range opts.Nodes {
		if node.Row < 0 {
			return fmt.Errorf("node %d has negative row", i+1)
		}
		if node.Content == "" && node.Label == "" {
			return fmt.Errorf("node %d must have content or a label", i+1)
		}
	}

	return nil
}

func (v *QuestionValidator) validateMapLabelingOptions(raw []byte) error {
	var opts models.MapLabelingOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid map labeling options: %w", err)
	}

	if opts.ImageURL == "" {
		return fmt.Errorf("image_url is required")
	}
	if len(opts.Items) == 0 {
		return fmt.Errorf("must have at least 1 statement")
	}

	seen := make(map[string]bool)
	for _, label := range opts.Labels {
		if label == "" {
			return fmt.Errorf("labels cannot be empty")
		}
		if seen[label] {
			return fmt.Errorf("duplicate label: %s", label)
		}
		seen[label] = true
	}

	return nil
}

func (v *QuestionValidator) validateEssayOptions(raw []byte) error {
	var opts models.EssayOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid essay options: %w", err)
	}

	if opts.MinWords < 0 {
		return fmt.Errorf("min_words cannot be negative")
	}
	if opts.MinWords > 1000 {
		return fmt.Errorf("min_words cannot exceed 1000")
	}

	return nil
}

func (v *QuestionValidator) validateSpeakingOptions(raw []byte) error {
	var opts models.SpeakingOptions
	if err := unmarshalOptions(raw, &opts); err != nil {
		return fmt.Errorf("invalid speaking options: %w", err)
	}

	for i, sub := range opts.SubQuestions {
		if strings.TrimSpace(sub.Prompt) == "" {
			return fmt.Errorf("sub-question %d prompt cannot be empty", i+1)
		}
	}

	if opts.PrepTimeSeconds < 0 || opts.PrepTimeSeconds > 300 {
		return fmt.Errorf("prep_time_seconds must be between 0 and 300")
	}
	if opts.SpeakingTimeSeconds < 0 || opts.SpeakingTimeSeconds > 600 {
		return fmt.Errorf("speaking_time_seconds must be between 0 and 600")
	}

	return nil
}

func unmarshalOptions(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
