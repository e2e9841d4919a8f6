package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/events"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/preview"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/repositories"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

// PreviewService opens preview sessions over authored sections and applies
// candidate interaction events to them. Every apply persists the session and
// returns the freshly rendered view.
type PreviewService interface {
	Open(ctx context.Context, sectionID uint, openedBy string) (*PreviewResponse, error)
	Apply(ctx context.Context, previewID string, event *PreviewEvent) (*PreviewResponse, error)
	View(ctx context.Context, previewID string) (*PreviewResponse, error)
	Close(ctx context.Context, previewID string) error
}

// PreviewEvent is the tagged union of candidate interactions. Type selects
// the action; the remaining fields are read per type.
type PreviewEvent struct {
	Type string `json:"type" validate:"required"`

	Num      int    `json:"num,omitempty"`       // navigate, arm_match_slot
	StartNum int    `json:"start_num,omitempty"` // format operations
	Value    string `json:"value,omitempty"`     // select_option, choice, word, label, text
	BlankIdx int    `json:"blank_idx,omitempty"` // 1-based blank index
	ItemIdx  int    `json:"item_idx,omitempty"`  // 1-based statement index

	QuestionID uint    `json:"question_id,omitempty"` // speaking operations
	SubIdx     int     `json:"sub_idx,omitempty"`
	URL        string  `json:"url,omitempty"`
	Duration   float64 `json:"duration,omitempty"`

	SourceID string `json:"source_id,omitempty"` // audio operations
}

// Preview event types.
const (
	EventBegin         = "begin"
	EventNavigate      = "navigate"
	EventSelectOption  = "select_option"
	EventSelectChoice  = "select_choice"
	EventSetBlank      = "set_blank"
	EventPlaceWord     = "place_word"
	EventClearBlank    = "clear_blank"
	EventArmMatchSlot  = "arm_match_slot"
	EventAssignMatch   = "assign_match"
	EventClearMatch    = "clear_match"
	EventPlaceHeading  = "place_heading"
	EventToggleMapCell = "toggle_map_cell"
	EventSetEssayText  = "set_essay_text"

	EventSelectSpeakingSub = "select_speaking_sub"
	EventCompleteRecording = "complete_recording"
	EventResetRecording    = "reset_recording"
	EventSubmitRecording   = "submit_recording"
	EventSkipSub           = "skip_sub"
	EventUnskipSub         = "unskip_sub"

	EventPlayAudio        = "play_audio"
	EventPauseAudio       = "pause_audio"
	EventRequestRecording = "request_recording"
)

// PreviewResponse carries the rendered view plus a non-fatal warning when an
// interaction was rejected (gated navigation, full selections).
type PreviewResponse struct {
	PreviewID string              `json:"preview_id"`
	View      preview.SectionView `json:"view"`
	Warning   string              `json:"warning,omitempty"`
}

type previewService struct {
	repo      *repositories.Repository
	store     preview.SessionStore
	publisher events.EventPublisher
	logger    utils.Logger
	cdn       *utils.CDNResolver
}

func NewPreviewService(repo *repositories.Repository, store preview.SessionStore, publisher events.EventPublisher, logger utils.Logger, cdn *utils.CDNResolver) PreviewService {
	return &previewService{
		repo:      repo,
		store:     store,
		publisher: publisher,
		logger:    logger,
		cdn:       cdn,
	}
}

// Open loads the section's current structure and starts a fresh session.
// Previews never share state: reopening after an edit always re-derives
// numbering from scratch.
func (s *previewService) Open(ctx context.Context, sectionID uint, openedBy string) (*PreviewResponse, error) {
	data, err := s.loadSectionData(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	session := preview.NewSession(*data)
	previewID := uuid.New().String()

	if err := s.store.Save(ctx, previewID, session); err != nil {
		return nil, fmt.Errorf("failed to save preview session: %w", err)
	}

	s.emit(ctx, events.EventPreviewOpened, events.PreviewOpenedEvent{
		PreviewID:   previewID,
		SectionID:   sectionID,
		SectionType: data.Section.SectionType,
		TotalItems:  session.TotalItems(),
		OpenedBy:    openedBy,
	})

	s.logger.InfoContext(ctx, "Preview opened",
		"preview_id", previewID,
		"section_id", sectionID,
		"total_items", session.TotalItems())

	return &PreviewResponse{
		PreviewID: previewID,
		View:      session.Render(s.cdn),
	}, nil
}

// Apply runs one interaction event against the stored session. Rejected
// interactions surface as warnings with the unchanged view; only malformed
// requests and storage failures are errors.
func (s *previewService) Apply(ctx context.Context, previewID string, event *PreviewEvent) (*PreviewResponse, error) {
	session, err := s.loadSession(ctx, previewID)
	if err != nil {
		return nil, err
	}

	warning, err := s.applyEvent(ctx, previewID, session, event)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, previewID, session); err != nil {
		return nil, fmt.Errorf("failed to save preview session: %w", err)
	}

	return &PreviewResponse{
		PreviewID: previewID,
		View:      session.Render(s.cdn),
		Warning:   warning,
	}, nil
}

func (s *previewService) View(ctx context.Context, previewID string) (*PreviewResponse, error) {
	session, err := s.loadSession(ctx, previewID)
	if err != nil {
		return nil, err
	}
	return &PreviewResponse{
		PreviewID: previewID,
		View:      session.Render(s.cdn),
	}, nil
}

func (s *previewService) Close(ctx context.Context, previewID string) error {
	session, err := s.loadSession(ctx, previewID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, previewID); err != nil {
		return fmt.Errorf("failed to delete preview session: %w", err)
	}

	s.emit(ctx, events.EventPreviewClosed, events.PreviewClosedEvent{
		PreviewID: previewID,
		SectionID: session.Data().Section.ID,
	})
	return nil
}

// applyEvent dispatches one event to the session. The returned string is a
// user-facing warning for rejected interactions.
func (s *previewService) applyEvent(ctx context.Context, previewID string, session *preview.Session, event *PreviewEvent) (string, error) {
	switch event.Type {
	case EventBegin:
		session.Begin()
		return "", nil

	case EventNavigate:
		if err := session.Navigate(event.Num); err != nil {
			var navErr *preview.NavigationError
			if errors.As(err, &navErr) {
				return navErr.Reason, nil
			}
			return "", err
		}
		return "", nil

	case EventSelectOption:
		return warnOnly(session.SelectOption(event.StartNum, event.Value))
	case EventSelectChoice:
		return warnOnly(session.SelectStatementChoice(event.StartNum, event.ItemIdx, event.Value))
	case EventSetBlank:
		return warnOnly(session.SetBlank(event.StartNum, event.BlankIdx, event.Value))
	case EventPlaceWord:
		return warnOnly(session.PlaceWord(event.StartNum, event.BlankIdx, event.Value))
	case EventClearBlank:
		return warnOnly(session.ClearBlank(event.StartNum, event.BlankIdx))
	case EventArmMatchSlot:
		return warnOnly(session.ArmMatchSlot(event.Num))
	case EventAssignMatch:
		return warnOnly(session.AssignMatchLabel(event.StartNum, event.Value))
	case EventClearMatch:
		return warnOnly(session.ClearMatchSlot(event.Num))
	case EventPlaceHeading:
		return warnOnly(session.PlaceHeading(event.StartNum, event.BlankIdx, event.Value))
	case EventToggleMapCell:
		return warnOnly(session.ToggleMapCell(event.StartNum, event.ItemIdx, event.Value))
	case EventSetEssayText:
		return warnOnly(session.SetEssayText(event.StartNum, event.Value))

	case EventSelectSpeakingSub:
		return warnOnly(session.SelectSpeakingSub(event.QuestionID, event.SubIdx))
	case EventCompleteRecording:
		return warnOnly(session.CompleteRecording(event.QuestionID, event.SubIdx, event.URL, event.Duration))
	case EventResetRecording:
		return warnOnly(session.ResetRecording(event.QuestionID, event.SubIdx))
	case EventSubmitRecording:
		if err := session.SubmitRecording(event.QuestionID, event.SubIdx); err != nil {
			return err.Error(), nil
		}
		s.emit(ctx, events.EventRecordingSubmitted, events.RecordingSubmittedEvent{
			PreviewID:   previewID,
			QuestionID:  event.QuestionID,
			SubQuestion: event.SubIdx,
			RecordingURL: func() string {
				st, err := session.SpeakingStateFor(event.QuestionID)
				if err != nil {
					return ""
				}
				return st.Recordings[event.SubIdx].URL
			}(),
		})
		return "", nil
	case EventSkipSub:
		return warnOnly(session.SkipSub(event.QuestionID, event.SubIdx))
	case EventUnskipSub:
		return warnOnly(session.UnskipSub(event.QuestionID, event.SubIdx))

	case EventPlayAudio:
		session.PlayAudio(event.SourceID)
		return "", nil
	case EventPauseAudio:
		session.PauseAudio()
		return "", nil
	case EventRequestRecording:
		session.RequestRecording()
		return "", nil

	default:
		return "", fmt.Errorf("%w: %q", ErrPreviewUnknownEvent, event.Type)
	}
}

// warnOnly downgrades interaction rejections to warnings. The session is
// unchanged when the engine returns an error, so the view stays consistent.
func warnOnly(err error) (string, error) {
	if err != nil {
		return err.Error(), nil
	}
	return "", nil
}

func (s *previewService) loadSession(ctx context.Context, previewID string) (*preview.Session, error) {
	session, err := s.store.Load(ctx, previewID)
	if err != nil {
		if errors.Is(err, preview.ErrSessionNotFound) {
			return nil, ErrPreviewSessionNotFound
		}
		return nil, fmt.Errorf("failed to load preview session: %w", err)
	}
	return session, nil
}

// loadSectionData assembles the engine's structural input: section, groups in
// position order, and the questions and blocks they reference.
func (s *previewService) loadSectionData(ctx context.Context, sectionID uint) (*preview.SectionData, error) {
	section, err := s.repo.Section.GetByIDWithDetails(ctx, sectionID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to load section: %w", err)
	}

	var questionIDs []uint
	for _, group := range section.QuestionGroups {
		questionIDs = append(questionIDs, group.QuestionIDs...)
	}
	questions, err := s.repo.Question.GetByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load section questions: %w", err)
	}

	data := &preview.SectionData{
		Section:   *section,
		Groups:    section.QuestionGroups,
		Questions: make(map[uint]*models.Question, len(questions)),
		Blocks:    make(map[uint]*models.ContentBlock, len(section.ContentBlocks)),
	}
	for _, q := range questions {
		data.Questions[q.ID] = q
	}
	for i := range section.ContentBlocks {
		block := &section.ContentBlocks[i]
		data.Blocks[block.ID] = block
	}
	return data, nil
}

func (s *previewService) emit(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := &events.AuthoringEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "lexistest-admin",
		Data:      data,
	}
	if err := s.publisher.PublishAuthoringEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "event_type", eventType, "error", err)
	}
}
