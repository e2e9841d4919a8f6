package preview

import (
	"fmt"
	"strings"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// QuestionItem is the flattening of one question occurrence into its assigned
// slice of the global numbering space. Derived, never persisted: the item
// list is rebuilt from scratch on every structural change so insert, delete
// and reorder upstream can never leave stale numbers behind.
type QuestionItem struct {
	Question       *models.Question
	StartNum       int
	EndNum         int
	GroupID        uint
	ContentBlockID *uint
}

// Width returns how many numbered slots the item occupies.
func (it QuestionItem) Width() int {
	return it.EndNum - it.StartNum + 1
}

// Covers reports whether the global number falls inside the item's range.
func (it QuestionItem) Covers(num int) bool {
	return num >= it.StartNum && num <= it.EndNum
}

// BuildItems flattens ordered question groups into a globally numbered item
// list. Numbering starts at 1; each question occupies item_count consecutive
// slots. Question ids without a matching question are skipped. Returns the
// items and totalItems (the last item's EndNum, 0 if empty).
func BuildItems(groups []models.QuestionGroup, questions map[uint]*models.Question) ([]QuestionItem, int) {
	var items []QuestionItem
	counter := 1

	for _, group := range groups {
		for _, qid := range group.QuestionIDs {
			question, ok := questions[qid]
			if !ok || question == nil {
				continue
			}

			width := question.Items()
			items = append(items, QuestionItem{
				Question:       question,
				StartNum:       counter,
				EndNum:         counter + width - 1,
				GroupID:        group.ID,
				ContentBlockID: group.ContentBlockID,
			})
			counter += width
		}
	}

	total := 0
	if len(items) > 0 {
		total = items[len(items)-1].EndNum
	}
	return items, total
}

// NumberRange is one [start, end] run of a group's numbering space.
type NumberRange struct {
	Start int
	End   int
}

func (r NumberRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d–%d", r.Start, r.End)
}

// GroupRanges returns the per-question number ranges belonging to one group,
// in item order. Ranges are kept per question, not merged: two adjacent
// questions spanning 5–6 and 7–8 title as "Questions 5–6 and 7–8".
func GroupRanges(items []QuestionItem, groupID uint) []NumberRange {
	var ranges []NumberRange
	for _, item := range items {
		if item.GroupID != groupID {
			continue
		}
		ranges = append(ranges, NumberRange{Start: item.StartNum, End: item.EndNum})
	}
	return ranges
}

// AutoTitle produces an IELTS-style group title from its number ranges:
// "Question 5", "Questions 5–6 and 7–8", "Questions 1–4, 5–8 and 9–13".
// Singular "Question" only when the group covers exactly one numbered slot.
func AutoTitle(ranges []NumberRange) string {
	if len(ranges) == 0 {
		return ""
	}

	slots := 0
	for _, r := range ranges {
		slots += r.End - r.Start + 1
	}

	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}

	if slots == 1 {
		return "Question " + parts[0]
	}

	switch len(parts) {
	case 1:
		return "Questions " + parts[0]
	case 2:
		return "Questions " + parts[0] + " and " + parts[1]
	default:
		return "Questions " + strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
