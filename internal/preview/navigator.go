package preview

import (
	"fmt"
)

// NavigationError is a user-facing warning: the click is rejected, state is
// untouched, nothing is logged as a failure.
type NavigationError struct {
	Reason string
}

func (e *NavigationError) Error() string { return e.Reason }

// Navigate moves the active question number. Non-speaking sections navigate
// freely. Speaking sections gate by group position, evaluated fresh on every
// click:
//   - a lower-positioned group is never revisitable,
//   - a higher-positioned group opens only once every group up to and
//     including the current one is fully complete,
//   - movement inside the current group is always allowed.
func (s *Session) Navigate(num int) error {
	if num < 1 || num > s.totalItems {
		return fmt.Errorf("question number %d outside [1, %d]", num, s.totalItems)
	}

	if !s.IsSpeakingSection() {
		s.activeNum = num
		return nil
	}

	_, currentIdx, ok := s.groupAt(s.activeNum)
	if !ok {
		s.activeNum = num
		return nil
	}
	_, targetIdx, ok := s.groupAt(num)
	if !ok {
		return &NavigationError{Reason: fmt.Sprintf("question %d is not part of this section", num)}
	}

	switch {
	case targetIdx == currentIdx:
		s.activeNum = num
		return nil
	case targetIdx < currentIdx:
		return &NavigationError{Reason: "You cannot return to an earlier part of the speaking test."}
	default:
		for i := 0; i <= currentIdx; i++ {
			if !s.GroupComplete(s.data.Groups[i]) {
				return &NavigationError{
					Reason: "Please answer or skip every question in the current part before moving on.",
				}
			}
		}
		s.activeNum = num
		return nil
	}
}

// buildNavigatorView renders the numbered strip. Buttons carry answered
// state; gating is not precomputed per button because the policy is
// evaluated fresh on click.
func (s *Session) buildNavigatorView() NavigatorView {
	view := NavigatorView{
		CanPrev: s.activeNum > 1,
		CanNext: s.activeNum < s.totalItems,
		Gated:   s.IsSpeakingSection(),
	}

	for num := 1; num <= s.totalItems; num++ {
		view.Buttons = append(view.Buttons, NavButtonView{
			Num:      num,
			Active:   num == s.activeNum,
			Answered: s.numberAnswered(num),
		})
	}
	return view
}

// numberAnswered reports whether a number shows as answered in the strip.
// Speaking questions answer by completion, everything else by answer text.
func (s *Session) numberAnswered(num int) bool {
	item, ok := s.ItemAt(num)
	if !ok {
		return false
	}
	if item.Question.QuestionFormat.IsSpeaking() {
		st, found := s.speaking[item.Question.ID]
		return found && st.Complete()
	}
	return s.answers[num] != ""
}
