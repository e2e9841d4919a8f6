package preview

import (
	"fmt"
	"strings"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
)

// SetEssayText stores the full essay draft under the question's number.
func (s *Session) SetEssayText(startNum int, text string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	if !item.Question.QuestionFormat.IsEssay() {
		return fmt.Errorf("question at %d is %s, not an essay format", startNum, item.Question.QuestionFormat)
	}
	return s.SetAnswer(item.StartNum, text)
}

// WordCount is the whitespace-split token count used for the live counter.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func essayTaskLabel(format models.QuestionFormat) string {
	switch format {
	case models.EssayTask1:
		return "Writing Task 1"
	case models.EssayTask2:
		return "Writing Task 2"
	default:
		return ""
	}
}

func (s *Session) buildEssayView(item QuestionItem) (*EssayView, string) {
	q := item.Question
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)

	text := s.answers[item.StartNum]
	count := WordCount(text)

	view := &EssayView{
		Num:       item.StartNum,
		Text:      text,
		WordCount: count,
	}
	if opts.Essay != nil && opts.Essay.MinWords > 0 {
		// Advisory styling only: falling short never blocks anything.
		view.MinWords = opts.Essay.MinWords
		view.MeetsMinWords = count >= opts.Essay.MinWords
	}
	return view, ""
}

// buildWritingPanel renders the task prompt beside the essay input.
func buildWritingPanel(item QuestionItem) *WritingPanelView {
	return &WritingPanelView{
		TaskLabel:  essayTaskLabel(item.Question.QuestionFormat),
		PromptHTML: sanitize.HTMLForDisplay(item.Question.Content),
	}
}
