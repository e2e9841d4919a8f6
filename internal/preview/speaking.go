package preview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

// Per sub-question the recorder moves idle → recording → recorded →
// submitted, with an orthogonal skipped state reachable from idle and
// recorded. Submitted and skipped are only reversible through the explicit
// re-record and answer-this-question actions.

func (s *Session) speakingStateAndQuestion(questionID uint) (*SpeakingState, *models.Question, error) {
	st, err := s.SpeakingStateFor(questionID)
	if err != nil {
		return nil, nil, err
	}
	return st, s.data.Questions[questionID], nil
}

func checkSubIdx(st *SpeakingState, idx int) error {
	if idx < 0 || idx >= st.TotalSubs() {
		return fmt.Errorf("sub-question index %d outside [0, %d)", idx, st.TotalSubs())
	}
	return nil
}

// speakingAudioSource names the audio element for one sub-question so the
// coordination layer can address it.
func speakingAudioSource(questionID uint, idx int) string {
	return fmt.Sprintf("speaking:%d:%d", questionID, idx)
}

// SelectSpeakingSub switches the detail pane to another sub-question.
// Any previous playback stops; the newly selected sub-question's audio clip
// auto-plays when it has one.
func (s *Session) SelectSpeakingSub(questionID uint, idx int) error {
	st, q, err := s.speakingStateAndQuestion(questionID)
	if err != nil {
		return err
	}
	if err := checkSubIdx(st, idx); err != nil {
		return err
	}

	st.ActiveSubIdx = idx

	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	s.PauseAudio()
	if opts.Speaking != nil && idx < len(opts.Speaking.SubQuestions) {
		if sub := opts.Speaking.SubQuestions[idx]; sub.AudioURL != nil && *sub.AudioURL != "" {
			s.PlayAudio(speakingAudioSource(questionID, idx))
		}
	}
	return nil
}

// CompleteRecording records a finished capture: idle/recorded → recorded.
// The recorder widget fires this exactly once per successful capture.
func (s *Session) CompleteRecording(questionID uint, idx int, url string, durationSeconds float64) error {
	st, _, err := s.speakingStateAndQuestion(questionID)
	if err != nil {
		return err
	}
	if err := checkSubIdx(st, idx); err != nil {
		return err
	}
	if _, submitted := st.Submitted[idx]; submitted {
		return fmt.Errorf("sub-question %d already submitted; re-record first", idx)
	}

	st.Recordings[idx] = Recording{URL: url, DurationSeconds: durationSeconds}
	return nil
}

// ResetRecording is the re-record action: the take is discarded and the
// sub-question returns to idle, clearing a prior submission.
func (s *Session) ResetRecording(questionID uint, idx int) error {
	st, _, err := s.speakingStateAndQuestion(questionID)
	if err != nil {
		return err
	}
	if err := checkSubIdx(st, idx); err != nil {
		return err
	}

	delete(st.Recordings, idx)
	delete(st.Submitted, idx)
	return nil
}

// SubmitRecording finalizes a take: recorded → submitted. Submitting without
// a recording is rejected; the widget only enables submit after capture.
func (s *Session) SubmitRecording(questionID uint, idx int) error {
	st, _, err := s.speakingStateAndQuestion(questionID)
	if err != nil {
		return err
	}
	if err := checkSubIdx(st, idx); err != nil {
		return err
	}
	if _, ok := st.Recordings[idx]; !ok {
		return fmt.Errorf("sub-question %d has no recording to submit", idx)
	}

	st.Submitted[idx] = struct{}{}
	delete(st.Skipped, idx)
	return nil
}

// SkipSub marks a sub-question as skipped. Reachable from idle and recorded;
// an existing take is kept but stops counting.
func (s *Session) SkipSub(questionID uint, idx int) error {
	st, _, err := s.speakingStateAndQuestion(questionID)
	if err != nil {
		return err
	}
	if err := checkSubIdx(st, idx); err != nil {
		return err
	}

	st.Skipped[idx] = struct{}{}
	delete(st.Submitted, idx)
	return nil
}

// UnskipSub is the "answer this question" action: skipped → editable again.
func (s *Session) UnskipSub(questionID uint, idx int) error {
	st, _, err := s.speakingStateAndQuestion(questionID)
	if err != nil {
		return err
	}
	if err := checkSubIdx(st, idx); err != nil {
		return err
	}

	delete(st.Skipped, idx)
	return nil
}

// ===== CUE CARD (PART 2) =====

type cueCardPayload struct {
	Topic  string   `json:"topic"`
	Points []string `json:"points"`
}

// parseCueCard extracts the Part 2 topic and bullet points. JSON content is
// tried first; on failure a plain-text heuristic takes over (first line is
// the topic, leading "-", "*" or "•" lines are points). Neither path ever
// reports an error to the candidate.
func parseCueCard(content string) *CueCardView {
	var payload cueCardPayload
	if err := json.Unmarshal([]byte(content), &payload); err == nil && payload.Topic != "" {
		return &CueCardView{
			TopicHTML: sanitize.HTMLForDisplay(payload.Topic),
			Points:    payload.Points,
		}
	}

	// StripHTML collapses newlines, so strip line by line to keep the
	// topic/points structure.
	card := &CueCardView{}
	for _, line := range strings.Split(content, "\n") {
		line = sanitize.StripHTML(line)
		if line == "" {
			continue
		}
		if card.TopicHTML == "" {
			card.TopicHTML = sanitize.HTMLForDisplay(line)
			continue
		}
		trimmed := strings.TrimLeft(line, "-*• \t")
		if trimmed != "" {
			card.Points = append(card.Points, trimmed)
		}
	}
	if card.TopicHTML == "" {
		return nil
	}
	return card
}

// ===== VIEW =====

func speakingCategory(q *models.Question) models.SpeakingCategory {
	if q.SpeakingCategory != nil {
		return *q.SpeakingCategory
	}
	switch q.QuestionFormat {
	case models.SpeakingPart2:
		return models.SpeakingCategoryPart2
	case models.SpeakingPart3:
		return models.SpeakingCategoryPart3
	default:
		return models.SpeakingCategoryPart1
	}
}

func subStatus(st *SpeakingState, idx int) SpeakingSubStatus {
	if _, ok := st.Submitted[idx]; ok {
		return SubStatusSubmitted
	}
	if _, ok := st.Skipped[idx]; ok {
		return SubStatusSkipped
	}
	if _, ok := st.Recordings[idx]; ok {
		return SubStatusRecorded
	}
	return SubStatusNone
}

func (s *Session) buildSpeakingView(item QuestionItem, cdn *utils.CDNResolver) (*SpeakingView, string) {
	q := item.Question
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)

	st, err := s.SpeakingStateFor(q.ID)
	if err != nil {
		return nil, "No speaking data available for this question."
	}

	category := speakingCategory(q)
	isPart2 := category == models.SpeakingCategoryPart2

	view := &SpeakingView{
		Category:     category,
		MasterDetail: !isPart2,
		DoneCount:    len(st.Submitted) + len(st.Skipped),
		Complete:     st.Complete(),
	}

	var subs []models.SpeakingSubQuestion
	if opts.Speaking != nil && len(opts.Speaking.SubQuestions) > 0 {
		subs = opts.Speaking.SubQuestions
	} else {
		// Single-prompt fallback: the question content is the prompt.
		subs = []models.SpeakingSubQuestion{{Prompt: q.Content, AudioURL: q.AudioURL}}
	}
	if len(subs) == 0 {
		return nil, "No speaking prompts available for this question."
	}

	resolve := func(u *string) string {
		if u == nil || *u == "" {
			return ""
		}
		if cdn != nil {
			return cdn.Resolve(*u)
		}
		return *u
	}

	activeIdx := st.ActiveSubIdx
	if activeIdx < 0 || activeIdx >= len(subs) {
		activeIdx = 0
	}

	for i, sub := range subs {
		view.Subs = append(view.Subs, SpeakingSubView{
			Idx:        i,
			PromptHTML: sanitize.HTMLForDisplay(sub.Prompt),
			AudioURL:   resolve(sub.AudioURL),
			Status:     subStatus(st, i),
			Active:     i == activeIdx,
		})
	}

	if isPart2 {
		view.CueCard = parseCueCard(q.Content)
	}

	active := subs[activeIdx]
	audioSource := speakingAudioSource(q.ID, activeIdx)
	recording, hasRecording := st.Recordings[activeIdx]
	_, submitted := st.Submitted[activeIdx]
	_, skipped := st.Skipped[activeIdx]

	recorder := RecorderView{
		QuestionID:         q.ID,
		SubIdx:             activeIdx,
		AllowResponseReset: true,
		IsPart2:            isPart2,
		HasRecording:       hasRecording,
		RecordingURL:       recording.URL,
		DurationSeconds:    recording.DurationSeconds,
		Submitted:          submitted,
		Skipped:            skipped,
	}
	if opts.Speaking != nil {
		recorder.PrepTimeSeconds = opts.Speaking.PrepTimeSeconds
		recorder.SpeakingTimeSeconds = opts.Speaking.SpeakingTimeSeconds
		// Recording may not start while paired content audio is engaged.
		recorder.WaitForAudio = opts.Speaking.WaitForAudio && s.playingAudio != ""
	}

	view.Detail = &SpeakingDetailView{
		Idx:         activeIdx,
		PromptHTML:  sanitize.HTMLForDisplay(active.Prompt),
		AudioURL:    resolve(active.AudioURL),
		AudioSource: audioSource,
		Playing:     s.playingAudio == audioSource,
		Recorder:    recorder,
	}

	return view, ""
}
