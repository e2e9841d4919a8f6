package preview

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// SectionData is the already-fetched structural input the engine renders.
// It is read-only for the lifetime of a session.
type SectionData struct {
	Section   models.Section                `json:"section"`
	Groups    []models.QuestionGroup        `json:"groups"`
	Questions map[uint]*models.Question     `json:"questions"`
	Blocks    map[uint]*models.ContentBlock `json:"blocks"`
}

// Recording is one captured answer for a speaking sub-question.
type Recording struct {
	URL             string  `json:"url"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// SpeakingState tracks the recording state machine for one speaking question,
// per sub-question index. A sub-question is done once submitted or skipped;
// a recorded-but-unsubmitted take does not count.
type SpeakingState struct {
	ActiveSubIdx int                `json:"active_sub_idx"`
	Recordings   map[int]Recording  `json:"recordings"`
	Submitted    map[int]struct{}   `json:"-"`
	Skipped      map[int]struct{}   `json:"-"`
	totalSubs    int
}

func newSpeakingState(totalSubs int) *SpeakingState {
	return &SpeakingState{
		Recordings: make(map[int]Recording),
		Submitted:  make(map[int]struct{}),
		Skipped:    make(map[int]struct{}),
		totalSubs:  totalSubs,
	}
}

// TotalSubs returns how many sub-questions the speaking question bundles.
func (s *SpeakingState) TotalSubs() int { return s.totalSubs }

// SubDone reports whether the sub-question is submitted or skipped.
func (s *SpeakingState) SubDone(idx int) bool {
	if _, ok := s.Submitted[idx]; ok {
		return true
	}
	_, ok := s.Skipped[idx]
	return ok
}

// Complete reports whether every sub-question is submitted or skipped.
func (s *SpeakingState) Complete() bool {
	return len(s.Submitted)+len(s.Skipped) >= s.totalSubs
}

// Session owns all mutable exam-taking state for one open preview. Every
// mutation goes through a Session method; views receive state by value.
// Created fresh each time the preview opens and discarded on close.
type Session struct {
	data       SectionData
	items      []QuestionItem
	totalItems int

	answers         map[int]string
	activeNum       int
	activeMatchSlot int // 0 = no slot armed
	instructionOpen bool
	playingAudio    string
	speaking        map[uint]*SpeakingState
}

// NewSession builds a fresh session: empty answers, active number 1,
// instruction page showing.
func NewSession(data SectionData) *Session {
	items, total := BuildItems(data.Groups, data.Questions)
	return &Session{
		data:            data,
		items:           items,
		totalItems:      total,
		answers:         make(map[int]string),
		activeNum:       1,
		instructionOpen: true,
		speaking:        make(map[uint]*SpeakingState),
	}
}

// Data returns the read-only structural input.
func (s *Session) Data() SectionData { return s.data }

// Items returns the flattened, globally numbered item list.
func (s *Session) Items() []QuestionItem { return s.items }

// TotalItems returns the highest assigned number (0 for an empty section).
func (s *Session) TotalItems() int { return s.totalItems }

// ActiveNum returns the currently focused global question number.
func (s *Session) ActiveNum() int { return s.activeNum }

// InstructionOpen reports whether the instruction page is still showing.
func (s *Session) InstructionOpen() bool { return s.instructionOpen }

// Begin dismisses the instruction page.
func (s *Session) Begin() { s.instructionOpen = false }

// IsSpeakingSection reports whether navigation gating applies.
func (s *Session) IsSpeakingSection() bool {
	return s.data.Section.SectionType == models.SectionSpeaking
}

// ItemAt returns the item whose range covers the global number.
func (s *Session) ItemAt(num int) (QuestionItem, bool) {
	for _, item := range s.items {
		if item.Covers(num) {
			return item, true
		}
	}
	return QuestionItem{}, false
}

// itemByStart returns the item anchored at exactly startNum. Format
// operations address items by their start number.
func (s *Session) itemByStart(startNum int) (QuestionItem, error) {
	for _, item := range s.items {
		if item.StartNum == startNum {
			return item, nil
		}
	}
	return QuestionItem{}, fmt.Errorf("no question item starts at number %d", startNum)
}

// Answer returns the stored answer for a global number ("" when unanswered).
func (s *Session) Answer(num int) string { return s.answers[num] }

// Answers returns a copy of the full answer map.
func (s *Session) Answers() map[int]string {
	out := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// SetAnswer stores an answer under a global number; an empty value clears
// the slot. Numbers outside [1, totalItems] are rejected so the answer map
// invariant holds under any event sequence.
func (s *Session) SetAnswer(num int, value string) error {
	if num < 1 || num > s.totalItems {
		return fmt.Errorf("answer number %d outside [1, %d]", num, s.totalItems)
	}
	if value == "" {
		delete(s.answers, num)
		return nil
	}
	s.answers[num] = value
	return nil
}

// ActiveMatchSlot returns the armed matching slot (0 when none).
func (s *Session) ActiveMatchSlot() int { return s.activeMatchSlot }

// ArmMatchSlot arms a matching slot; arming 0 disarms.
func (s *Session) ArmMatchSlot(num int) error {
	if num != 0 {
		if _, ok := s.ItemAt(num); !ok {
			return fmt.Errorf("cannot arm slot %d: no such question number", num)
		}
	}
	s.activeMatchSlot = num
	return nil
}

// ===== GROUP HELPERS =====

// groupIndex returns the position of a group in the section's group order,
// or -1 when unknown. Gating compares positions, never ids.
func (s *Session) groupIndex(groupID uint) int {
	for i, g := range s.data.Groups {
		if g.ID == groupID {
			return i
		}
	}
	return -1
}

// groupAt returns the group owning the given global number.
func (s *Session) groupAt(num int) (models.QuestionGroup, int, bool) {
	item, ok := s.ItemAt(num)
	if !ok {
		return models.QuestionGroup{}, -1, false
	}
	idx := s.groupIndex(item.GroupID)
	if idx < 0 {
		return models.QuestionGroup{}, -1, false
	}
	return s.data.Groups[idx], idx, true
}

// ===== SPEAKING STATE =====

// speakingSubCount derives how many sub-questions a speaking question
// bundles. Part 2 cue cards and questions without a sub-question list count
// as a single sub-question.
func speakingSubCount(q *models.Question) int {
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.Speaking != nil && len(opts.Speaking.SubQuestions) > 0 {
		return len(opts.Speaking.SubQuestions)
	}
	return 1
}

// SpeakingStateFor returns (lazily creating) the state machine for one
// speaking question.
func (s *Session) SpeakingStateFor(questionID uint) (*SpeakingState, error) {
	q, ok := s.data.Questions[questionID]
	if !ok {
		return nil, fmt.Errorf("unknown question id %d", questionID)
	}
	if !q.QuestionFormat.IsSpeaking() {
		return nil, fmt.Errorf("question %d is not a speaking question", questionID)
	}
	st, ok := s.speaking[questionID]
	if !ok {
		st = newSpeakingState(speakingSubCount(q))
		s.speaking[questionID] = st
	}
	return st, nil
}

// QuestionComplete reports per-question completion for navigator gating.
// Non-speaking questions never gate, so they always report complete.
func (s *Session) QuestionComplete(questionID uint) bool {
	q, ok := s.data.Questions[questionID]
	if !ok {
		return true
	}
	if !q.QuestionFormat.IsSpeaking() {
		return true
	}
	st, ok := s.speaking[questionID]
	if !ok {
		return false
	}
	return st.Complete()
}

// GroupComplete reports whether every question in the group is complete.
func (s *Session) GroupComplete(group models.QuestionGroup) bool {
	for _, qid := range group.QuestionIDs {
		if _, ok := s.data.Questions[qid]; !ok {
			continue
		}
		if !s.QuestionComplete(qid) {
			return false
		}
	}
	return true
}

// ===== AUDIO COORDINATION =====

// At most one audio source is audibly playing at a time. Sources are
// addressed by caller-chosen ids ("block:3", "speaking:9:1", ...); starting
// a new source implicitly pauses the previous one.

// PlayingAudio returns the currently playing source id ("" when silent).
func (s *Session) PlayingAudio() string { return s.playingAudio }

// PlayAudio marks a source as the single playing one.
func (s *Session) PlayAudio(sourceID string) {
	s.playingAudio = sourceID
}

// PauseAudio silences playback.
func (s *Session) PauseAudio() {
	s.playingAudio = ""
}

// RequestRecording is the pause-before-capture handshake: any playing
// content or question audio is paused before the recorder may start.
// Returns whether something was actually playing.
func (s *Session) RequestRecording() bool {
	wasPlaying := s.playingAudio != ""
	s.playingAudio = ""
	return wasPlaying
}
