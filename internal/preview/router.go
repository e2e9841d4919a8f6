package preview

import (
	"fmt"
	"strings"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// RouteQuestion maps a question to exactly one renderer strategy. Unknown
// formats route to the unsupported renderer; routing itself never fails.
func RouteQuestion(q *models.Question) RendererKind {
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)

	switch {
	case q.QuestionFormat == models.MCQSingle || q.QuestionFormat == models.MCQMultiple:
		return RendererMCQ
	case q.QuestionFormat == models.TrueFalseNG || q.QuestionFormat == models.YesNoNG:
		return RendererTFNG
	case q.QuestionFormat == models.FillBlankTyping:
		return RendererFillBlankTyping
	case q.QuestionFormat == models.FillBlankDrag:
		return RendererFillBlankDrag
	case q.QuestionFormat == models.TableCompletion:
		if opts.FillBlank != nil && opts.FillBlank.InputMode == models.InputModeDrag {
			return RendererFillBlankDrag
		}
		return RendererFillBlankTyping
	case q.QuestionFormat == models.HeadingMatching:
		return RendererHeadingMatching
	case q.QuestionFormat == models.Matching:
		if isHeadingShaped(q, opts.Matching) {
			return RendererHeadingMatching
		}
		return RendererMatching
	case q.QuestionFormat == models.Flowchart:
		return RendererFlowchart
	case q.QuestionFormat == models.MapLabeling:
		return RendererMapLabeling
	case q.QuestionFormat.IsEssay():
		return RendererEssay
	case q.QuestionFormat.IsSpeaking():
		return RendererSpeaking
	default:
		return RendererUnsupported
	}
}

// isHeadingShaped detects a matching question that is really heading
// matching: every statement is empty and the content carries inline [N]
// markers. An explicit layout tag short-circuits the sniff either way.
// TODO: retire the sniff once authored payloads all carry the layout tag.
func isHeadingShaped(q *models.Question, opts *models.MatchingOptions) bool {
	if opts == nil {
		return false
	}
	if opts.Layout == models.LayoutHeadingPassage {
		return true
	}
	if opts.Layout != "" {
		return false
	}
	for _, item := range opts.Items {
		if strings.TrimSpace(item.Text) != "" {
			return false
		}
	}
	return HasMarkers(q.Content)
}

// unsupportedMessage is the visible fallback for formats the preview cannot
// render. Degrading to a message, never a panic, is a hard requirement.
func unsupportedMessage(format models.QuestionFormat) string {
	return fmt.Sprintf("unsupported format: %s", format)
}
