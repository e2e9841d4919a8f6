package preview

import (
	"fmt"
	"strings"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
)

// maxSelectable computes the multi-select cap: separate-numbers mode caps at
// item_count; otherwise an explicit maxSelections wins, then item_count when
// above 1, then the full option count.
func maxSelectable(q *models.Question, opts *models.MCQOptions) int {
	if q.QuestionFormat != models.MCQMultiple {
		return 1
	}
	if q.UseSeparateNumbers() {
		return q.Items()
	}
	if opts != nil && opts.MaxSelections > 0 {
		return opts.MaxSelections
	}
	if q.Items() > 1 {
		return q.Items()
	}
	if opts != nil {
		return len(opts.Options)
	}
	return 1
}

// selectedLabels returns the currently selected labels for an MCQ item, in
// option order regardless of storage mode.
func (s *Session) selectedLabels(item QuestionItem, opts *models.MCQOptions) []string {
	present := make(map[string]bool)

	if item.Question.UseSeparateNumbers() {
		for num := item.StartNum; num <= item.EndNum; num++ {
			if v := s.answers[num]; v != "" {
				present[v] = true
			}
		}
	} else {
		for _, label := range strings.Split(s.answers[item.StartNum], ",") {
			if label != "" {
				present[label] = true
			}
		}
	}

	var out []string
	if opts != nil {
		for _, opt := range opts.Options {
			if present[opt.Label] {
				out = append(out, opt.Label)
				delete(present, opt.Label)
			}
		}
	}
	// Labels no longer in the option list (edited upstream) keep their slot.
	for label := range present {
		out = append(out, label)
	}
	return out
}

// SelectOption applies one option click to an MCQ item.
//
// Single select: radio semantics, the new label replaces any prior one.
// Multi select in separate-numbers mode: a new label takes the first empty
// slot in [startNum, endNum]; clicking a selected label clears whichever
// slot holds it. Joined mode: labels accumulate comma-joined under startNum
// up to the cap; clicks past the cap are no-ops.
func (s *Session) SelectOption(startNum int, label string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	q := item.Question
	if q.QuestionFormat != models.MCQSingle && q.QuestionFormat != models.MCQMultiple {
		return fmt.Errorf("question at %d is %s, not an mcq format", startNum, q.QuestionFormat)
	}

	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)

	if q.QuestionFormat == models.MCQSingle {
		return s.SetAnswer(item.StartNum, label)
	}

	cap := maxSelectable(q, opts.MCQ)

	if q.UseSeparateNumbers() {
		// Deselect: clear whichever slot currently holds the label.
		for num := item.StartNum; num <= item.EndNum; num++ {
			if s.answers[num] == label {
				return s.SetAnswer(num, "")
			}
		}
		// Select: first empty slot wins.
		for num := item.StartNum; num <= item.EndNum; num++ {
			if s.answers[num] == "" {
				return s.SetAnswer(num, label)
			}
		}
		// All slots full: no-op, the button is disabled in the UI.
		return nil
	}

	selected := s.selectedLabels(item, opts.MCQ)
	for i, cur := range selected {
		if cur == label {
			selected = append(selected[:i], selected[i+1:]...)
			return s.SetAnswer(item.StartNum, strings.Join(selected, ","))
		}
	}
	if len(selected) >= cap {
		return nil
	}
	selected = append(selected, label)
	selected = sortByOptionOrder(selected, opts.MCQ)
	return s.SetAnswer(item.StartNum, strings.Join(selected, ","))
}

// sortByOptionOrder keeps the joined answer deterministic: labels serialize
// in option order, not click order.
func sortByOptionOrder(labels []string, opts *models.MCQOptions) []string {
	if opts == nil || len(opts.Options) == 0 {
		return labels
	}
	present := make(map[string]bool, len(labels))
	for _, l := range labels {
		present[l] = true
	}
	var out []string
	for _, opt := range opts.Options {
		if present[opt.Label] {
			out = append(out, opt.Label)
			delete(present, opt.Label)
		}
	}
	for _, l := range labels {
		if present[l] {
			out = append(out, l)
			delete(present, l)
		}
	}
	return out
}

func (s *Session) buildMCQView(item QuestionItem) (*MCQView, string) {
	q := item.Question
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.MCQ == nil || len(opts.MCQ.Options) == 0 {
		return nil, "No options available for this question."
	}

	multi := q.QuestionFormat == models.MCQMultiple
	cap := maxSelectable(q, opts.MCQ)
	selected := s.selectedLabels(item, opts.MCQ)
	selectedSet := make(map[string]bool, len(selected))
	for _, l := range selected {
		selectedSet[l] = true
	}
	atCap := multi && len(selected) >= cap

	view := &MCQView{
		PromptHTML:    sanitize.HTMLForDisplay(q.Content),
		DisplayMode:   opts.MCQ.DisplayMode,
		MultiSelect:   multi,
		MaxSelectable: cap,
		SelectedCount: len(selected),
	}
	for _, opt := range opts.MCQ.Options {
		view.Options = append(view.Options, MCQOptionView{
			Label:    opt.Label,
			TextHTML: sanitize.HTMLForDisplay(opt.Text),
			Selected: selectedSet[opt.Label],
			Disabled: atCap && !selectedSet[opt.Label],
		})
	}
	return view, ""
}
