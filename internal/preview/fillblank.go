package preview

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
)

// blankNum maps a question-relative blank index to its global number.
func blankNum(item QuestionItem, blankIdx int) (int, error) {
	num := item.StartNum + blankIdx - 1
	if blankIdx < 1 || num > item.EndNum {
		return 0, fmt.Errorf("blank %d outside question range %d–%d", blankIdx, item.StartNum, item.EndNum)
	}
	return num, nil
}

func typableFormat(f models.QuestionFormat) bool {
	return f == models.FillBlankTyping || f == models.FillBlankDrag ||
		f == models.TableCompletion || f == models.Flowchart
}

// SetBlank types text into blank N of a fill-style question (typing blanks,
// table cells, flowchart nodes). Only the addressed number changes.
func (s *Session) SetBlank(startNum, blankIdx int, text string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	if !typableFormat(item.Question.QuestionFormat) {
		return fmt.Errorf("question at %d is %s, not a fill-blank format", startNum, item.Question.QuestionFormat)
	}
	num, err := blankNum(item, blankIdx)
	if err != nil {
		return err
	}
	return s.SetAnswer(num, text)
}

// usedWords returns how many times each word-bank entry is currently placed
// in this question's blanks.
func (s *Session) usedWords(item QuestionItem) map[string]int {
	used := make(map[string]int)
	for num := item.StartNum; num <= item.EndNum; num++ {
		if v := s.answers[num]; v != "" {
			used[v]++
		}
	}
	return used
}

// PlaceWord drops a word-bank entry into blank N of a drag question. When
// duplicates are disallowed, a word already sitting in another blank of the
// same question is unavailable until cleared.
func (s *Session) PlaceWord(startNum, blankIdx int, word string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	q := item.Question
	if RouteQuestion(q) != RendererFillBlankDrag {
		return fmt.Errorf("question at %d does not take dragged words", startNum)
	}

	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.FillBlank == nil || len(opts.FillBlank.WordBank) == 0 {
		return fmt.Errorf("question at %d has no word bank", startNum)
	}

	inBank := false
	for _, w := range opts.FillBlank.WordBank {
		if w == word {
			inBank = true
			break
		}
	}
	if !inBank {
		return fmt.Errorf("word %q is not in the word bank", word)
	}

	num, err := blankNum(item, blankIdx)
	if err != nil {
		return err
	}

	if !opts.FillBlank.AllowDuplicate {
		for n := item.StartNum; n <= item.EndNum; n++ {
			if n != num && s.answers[n] == word {
				return fmt.Errorf("word %q is already placed", word)
			}
		}
	}

	return s.SetAnswer(num, word)
}

// ClearBlank empties blank N, returning its word to the pool in drag mode.
func (s *Session) ClearBlank(startNum, blankIdx int) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	num, err := blankNum(item, blankIdx)
	if err != nil {
		return err
	}
	return s.SetAnswer(num, "")
}

// buildFillBlankView renders typing and drag variants from one code path;
// the mode only changes whether a word bank ships alongside the segments.
// Sanitizing before tokenizing keeps [N] markers inside <td> cells inline.
func (s *Session) buildFillBlankView(item QuestionItem, mode models.InputMode) (*FillBlankView, string) {
	q := item.Question
	content := sanitize.HTMLForDisplay(q.Content)
	segments := SplitMarkers(content)
	if len(segments) == 0 {
		return nil, "No content available for this question."
	}

	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	allowDup := opts.FillBlank != nil && opts.FillBlank.AllowDuplicate

	view := &FillBlankView{Mode: mode, AllowDuplicate: allowDup}
	hasBlank := false
	for _, seg := range segments {
		view.Segments = append(view.Segments, s.passageSegment(item, seg, &hasBlank))
	}
	if !hasBlank {
		return nil, "No blanks found in this question's content."
	}

	if mode == models.InputModeDrag {
		if opts.FillBlank == nil || len(opts.FillBlank.WordBank) == 0 {
			return nil, "No word bank available for this question."
		}
		used := s.usedWords(item)
		for _, word := range opts.FillBlank.WordBank {
			available := true
			if !allowDup && used[word] > 0 {
				// Each placement consumes one bank entry.
				available = false
				used[word]--
			}
			view.WordBank = append(view.WordBank, WordView{Word: word, Available: available})
		}
	}

	return view, ""
}

// passageSegment converts a tokenizer segment into a view segment, resolving
// blank indices to global numbers and their current answers.
func (s *Session) passageSegment(item QuestionItem, seg Segment, sawBlank *bool) PassageSegmentView {
	if seg.BlankIndex == 0 {
		return PassageSegmentView{HTML: seg.HTML}
	}
	num := item.StartNum + seg.BlankIndex - 1
	if num > item.EndNum {
		// Marker beyond item_count: render it inert rather than dropping it.
		return PassageSegmentView{HTML: fmt.Sprintf("[%d]", seg.BlankIndex)}
	}
	if sawBlank != nil {
		*sawBlank = true
	}
	value := s.answers[num]
	return PassageSegmentView{Blank: &BlankView{Num: num, Value: value, Filled: value != ""}}
}
