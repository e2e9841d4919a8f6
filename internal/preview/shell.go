package preview

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

// Render derives the complete view-model tree from current session state.
// It is a pure read: rendering twice in a row yields the same tree.
func (s *Session) Render(cdn *utils.CDNResolver) SectionView {
	section := s.data.Section

	view := SectionView{
		SectionID:       section.ID,
		Title:           section.Title,
		SectionType:     section.SectionType,
		InstructionOpen: s.instructionOpen,
		TotalItems:      s.totalItems,
		ActiveNum:       s.activeNum,
		PlayingAudio:    s.playingAudio,
		Navigator:       s.buildNavigatorView(),
	}
	if section.Instructions != nil {
		view.Instructions = sanitize.HTMLForDisplay(*section.Instructions)
	}

	if s.instructionOpen {
		return view
	}

	item, ok := s.ItemAt(s.activeNum)
	if !ok {
		return view
	}

	view.Group = s.buildGroupView(item)
	view.Content = s.buildContentPanel(item, cdn)
	view.Question = s.buildQuestionView(item, cdn)

	if view.Question != nil && view.Question.Renderer == RendererHeadingMatching {
		// The passage half lives beside the heading list, decoupled from it.
		list, passage, placeholder := s.buildHeadingViews(item)
		view.Question.Headings = list
		view.HeadingPassage = passage
		if placeholder != "" {
			view.Question.Placeholder = placeholder
		}
	}

	if item.Question.QuestionFormat.IsEssay() {
		view.Writing = buildWritingPanel(item)
	}

	return view
}

func (s *Session) buildGroupView(item QuestionItem) *GroupView {
	idx := s.groupIndex(item.GroupID)
	if idx < 0 {
		return nil
	}
	group := s.data.Groups[idx]

	view := &GroupView{GroupID: group.ID}
	if group.Title != nil && *group.Title != "" {
		view.Title = *group.Title
	} else {
		view.Title = AutoTitle(GroupRanges(s.items, group.ID))
		view.AutoTitled = true
	}
	if group.Instructions != nil {
		view.Instructions = sanitize.HTMLForDisplay(*group.Instructions)
	}
	if group.SubInstructions != nil {
		view.SubInstructions = sanitize.HTMLForDisplay(*group.SubInstructions)
	}
	return view
}

func (s *Session) buildContentPanel(item QuestionItem, cdn *utils.CDNResolver) *ContentPanelView {
	if item.ContentBlockID == nil {
		return nil
	}
	block, ok := s.data.Blocks[*item.ContentBlockID]
	if !ok {
		return nil
	}

	view := &ContentPanelView{
		BlockID:     block.ID,
		ContentType: block.ContentType,
	}

	switch block.ContentType {
	case models.ContentAudio:
		if block.AudioURL != nil {
			url := *block.AudioURL
			if cdn != nil {
				url = cdn.Resolve(url)
			}
			view.AudioURL = url
		}
		view.AudioSource = contentAudioSource(block.ID)
		view.Playing = s.playingAudio == view.AudioSource
	default:
		if block.PassageTitle != nil {
			view.PassageTitle = *block.PassageTitle
		}
		if block.PassageContent != nil {
			view.PassageHTML = sanitize.HTMLForDisplay(*block.PassageContent)
		}
		if block.PassageFootnotes != nil {
			view.Footnotes = sanitize.HTMLForDisplay(*block.PassageFootnotes)
		}
	}
	return view
}

// contentAudioSource names a content block's audio element for the
// single-playing-source coordination.
func contentAudioSource(blockID uint) string {
	return fmt.Sprintf("block:%d", blockID)
}

// buildQuestionView routes the active item to its renderer and assembles
// the question side of the layout. Every failure mode ends in a visible
// placeholder or unsupported message, never a panic.
func (s *Session) buildQuestionView(item QuestionItem, cdn *utils.CDNResolver) *QuestionView {
	q := item.Question

	view := &QuestionView{
		StartNum: item.StartNum,
		EndNum:   item.EndNum,
		Format:   q.QuestionFormat,
		Renderer: RouteQuestion(q),
	}
	if q.Title != nil {
		view.Title = *q.Title
	}
	if q.Instructions != nil {
		view.InstructionsHTML = sanitize.HTMLForDisplay(*q.Instructions)
	}
	if q.SubInstructions != nil {
		view.SubInstructionsHTML = sanitize.HTMLForDisplay(*q.SubInstructions)
	}
	if q.AudioURL != nil && *q.AudioURL != "" {
		url := *q.AudioURL
		if cdn != nil {
			url = cdn.Resolve(url)
		}
		view.AudioURL = url
		view.AudioSource = fmt.Sprintf("question:%d", q.ID)
	}

	switch view.Renderer {
	case RendererMCQ:
		view.MCQ, view.Placeholder = s.buildMCQView(item)
	case RendererTFNG:
		view.TFNG, view.Placeholder = s.buildTFNGView(item)
	case RendererFillBlankTyping:
		view.FillBlank, view.Placeholder = s.buildFillBlankView(item, models.InputModeTyping)
	case RendererFillBlankDrag:
		view.FillBlank, view.Placeholder = s.buildFillBlankView(item, models.InputModeDrag)
	case RendererMatching:
		view.Matching, view.Placeholder = s.buildMatchingView(item)
	case RendererHeadingMatching:
		// Assembled by the shell so the passage half can sit in its own pane.
	case RendererFlowchart:
		view.Flowchart, view.Placeholder = s.buildFlowchartView(item)
	case RendererMapLabeling:
		view.MapLabel, view.Placeholder = s.buildMapLabelingView(item, cdn)
	case RendererEssay:
		view.Essay, view.Placeholder = s.buildEssayView(item)
	case RendererSpeaking:
		view.Speaking, view.Placeholder = s.buildSpeakingView(item, cdn)
	default:
		view.Unsupported = unsupportedMessage(q.QuestionFormat)
	}

	return view
}
