package preview

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
)

func matchingOpts(q *models.Question) *models.MatchingOptions {
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	return opts.Matching
}

func labelInOptions(label string, opts *models.MatchingOptions) bool {
	for _, opt := range opts.Options {
		if opt.Label == label {
			return true
		}
	}
	return false
}

// labelUsed reports whether the label is already assigned to any number in
// the item's range.
func (s *Session) labelUsed(item QuestionItem, label string) bool {
	for num := item.StartNum; num <= item.EndNum; num++ {
		if s.answers[num] == label {
			return true
		}
	}
	return false
}

// AssignMatchLabel applies a pill click in pill-assignment mode. With a slot
// armed the label lands there and the slot disarms; otherwise it lands in
// the first unfilled slot in statement order. Clicking a label that is
// already assigned while duplicates are disallowed is a no-op (the pill is
// struck through in the UI).
func (s *Session) AssignMatchLabel(startNum int, label string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	q := item.Question
	if RouteQuestion(q) != RendererMatching {
		return fmt.Errorf("question at %d is not pill-assignment matching", startNum)
	}

	opts := matchingOpts(q)
	if opts == nil || len(opts.Options) == 0 {
		return fmt.Errorf("question at %d has no matching options", startNum)
	}
	if !labelInOptions(label, opts) {
		return fmt.Errorf("label %q is not a matching option", label)
	}

	if !opts.AllowDuplicate && s.labelUsed(item, label) {
		return nil
	}

	if armed := s.activeMatchSlot; armed != 0 && item.Covers(armed) {
		s.activeMatchSlot = 0
		return s.SetAnswer(armed, label)
	}

	for num := item.StartNum; num <= item.EndNum; num++ {
		if s.answers[num] == "" {
			return s.SetAnswer(num, label)
		}
	}
	return nil
}

// ClearMatchSlot empties an assigned slot; a cleared label becomes
// selectable again everywhere.
func (s *Session) ClearMatchSlot(num int) error {
	if s.activeMatchSlot == num {
		s.activeMatchSlot = 0
	}
	return s.SetAnswer(num, "")
}

// PlaceHeading drops a heading label onto passage blank N in heading
// matching. The heading list and the passage communicate only through the
// shared answers map.
func (s *Session) PlaceHeading(startNum, blankIdx int, label string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	q := item.Question
	if RouteQuestion(q) != RendererHeadingMatching {
		return fmt.Errorf("question at %d is not heading matching", startNum)
	}

	opts := matchingOpts(q)
	if opts == nil || len(opts.Options) == 0 {
		return fmt.Errorf("question at %d has no heading options", startNum)
	}
	if !labelInOptions(label, opts) {
		return fmt.Errorf("label %q is not a heading option", label)
	}

	num, err := blankNum(item, blankIdx)
	if err != nil {
		return err
	}

	if !opts.AllowDuplicate {
		for n := item.StartNum; n <= item.EndNum; n++ {
			if n != num && s.answers[n] == label {
				return fmt.Errorf("heading %q is already placed", label)
			}
		}
	}

	return s.SetAnswer(num, label)
}

func (s *Session) buildMatchingView(item QuestionItem) (*MatchingView, string) {
	q := item.Question
	opts := matchingOpts(q)
	if opts == nil || len(opts.Options) == 0 {
		return nil, "No matching options available for this question."
	}

	view := &MatchingView{AllowDuplicate: opts.AllowDuplicate}

	for _, opt := range opts.Options {
		assigned := s.labelUsed(item, opt.Label)
		view.Options = append(view.Options, MatchPillView{
			Label:    opt.Label,
			TextHTML: sanitize.HTMLForDisplay(opt.Text),
			Assigned: assigned,
			Disabled: assigned && !opts.AllowDuplicate,
		})
	}

	for i, stmt := range opts.Items {
		num := item.StartNum + i
		if num > item.EndNum {
			break
		}
		view.Statements = append(view.Statements, MatchSlotView{
			Num:      num,
			TextHTML: sanitize.HTMLForDisplay(stmt.Text),
			Value:    s.answers[num],
			Armed:    s.activeMatchSlot == num,
		})
	}
	if len(view.Statements) == 0 {
		return nil, "No statements available for this question."
	}

	return view, ""
}

// buildHeadingViews renders the two decoupled halves of heading matching:
// the draggable heading list (question side) and the passage with inline
// drop targets (stimulus side).
func (s *Session) buildHeadingViews(item QuestionItem) (*HeadingListView, *HeadingPassageView, string) {
	q := item.Question
	opts := matchingOpts(q)
	if opts == nil || len(opts.Options) == 0 {
		return nil, nil, "No heading options available for this question."
	}

	list := &HeadingListView{AllowDuplicate: opts.AllowDuplicate}
	for _, opt := range opts.Options {
		list.Headings = append(list.Headings, HeadingOptionView{
			Label:    opt.Label,
			TextHTML: sanitize.HTMLForDisplay(opt.Text),
			Used:     s.labelUsed(item, opt.Label),
		})
	}

	passage := &HeadingPassageView{}
	for _, seg := range SplitMarkers(sanitize.HTMLForDisplay(q.Content)) {
		passage.Segments = append(passage.Segments, s.passageSegment(item, seg, nil))
	}
	if len(passage.Segments) == 0 {
		return list, nil, ""
	}

	return list, passage, ""
}
