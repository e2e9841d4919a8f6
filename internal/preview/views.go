package preview

import (
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
)

// View models are plain serializable structs derived from session state on
// every render. Nothing in this file mutates anything: state flows down as
// values, mutations go back up through Session methods.

type RendererKind string

const (
	RendererMCQ             RendererKind = "mcq"
	RendererTFNG            RendererKind = "tfng"
	RendererFillBlankTyping RendererKind = "fill_blank_typing"
	RendererFillBlankDrag   RendererKind = "fill_blank_drag"
	RendererMatching        RendererKind = "matching"
	RendererHeadingMatching RendererKind = "heading_matching"
	RendererFlowchart       RendererKind = "flowchart"
	RendererMapLabeling     RendererKind = "map_labeling"
	RendererEssay           RendererKind = "essay"
	RendererSpeaking        RendererKind = "speaking"
	RendererUnsupported     RendererKind = "unsupported"
)

// SectionView is the root of the rendered preview.
type SectionView struct {
	SectionID       uint               `json:"section_id"`
	Title           string             `json:"title"`
	SectionType     models.SectionType `json:"section_type"`
	InstructionOpen bool               `json:"instruction_open"`
	Instructions    string             `json:"instructions,omitempty"`
	TotalItems      int                `json:"total_items"`
	ActiveNum       int                `json:"active_num"`
	PlayingAudio    string             `json:"playing_audio,omitempty"`

	Content        *ContentPanelView   `json:"content,omitempty"`
	HeadingPassage *HeadingPassageView `json:"heading_passage,omitempty"`
	Writing        *WritingPanelView   `json:"writing,omitempty"`
	Group          *GroupView          `json:"group,omitempty"`
	Question       *QuestionView       `json:"question,omitempty"`
	Navigator      NavigatorView       `json:"navigator"`
}

// ContentPanelView renders the stimulus side: passage text or audio player.
type ContentPanelView struct {
	BlockID      uint               `json:"block_id"`
	ContentType  models.ContentType `json:"content_type"`
	PassageTitle string             `json:"passage_title,omitempty"`
	PassageHTML  string             `json:"passage_html,omitempty"`
	Footnotes    string             `json:"footnotes,omitempty"`
	AudioURL     string             `json:"audio_url,omitempty"`
	AudioSource  string             `json:"audio_source,omitempty"`
	Playing      bool               `json:"playing"`
}

// HeadingPassageView is the passage half of heading matching: the question's
// own passage text with inline drop targets. It talks to the heading list
// only through shared answer state.
type HeadingPassageView struct {
	Segments []PassageSegmentView `json:"segments"`
}

type PassageSegmentView struct {
	HTML  string     `json:"html,omitempty"`
	Blank *BlankView `json:"blank,omitempty"`
}

// BlankView is one numbered answer slot rendered inline.
type BlankView struct {
	Num    int    `json:"num"`
	Value  string `json:"value"`
	Filled bool   `json:"filled"`
}

// WritingPanelView renders the essay task prompt (cue text, task image).
type WritingPanelView struct {
	TaskLabel  string `json:"task_label,omitempty"`
	PromptHTML string `json:"prompt_html,omitempty"`
}

// GroupView is the active group's header. Title falls back to the generated
// "Questions A–B" form when the group has no authored title.
type GroupView struct {
	GroupID         uint   `json:"group_id"`
	Title           string `json:"title"`
	AutoTitled      bool   `json:"auto_titled"`
	Instructions    string `json:"instructions,omitempty"`
	SubInstructions string `json:"sub_instructions,omitempty"`
}

// NavigatorView is the numbered button strip plus prev/next.
type NavigatorView struct {
	Buttons []NavButtonView `json:"buttons"`
	CanPrev bool            `json:"can_prev"`
	CanNext bool            `json:"can_next"`
	Gated   bool            `json:"gated"`
}

type NavButtonView struct {
	Num      int  `json:"num"`
	Active   bool `json:"active"`
	Answered bool `json:"answered"`
}

// QuestionView is the rendered active question. Exactly one renderer variant
// is populated; unknown formats populate Unsupported, renderers with no
// usable data populate Placeholder. Neither condition ever aborts a render.
type QuestionView struct {
	StartNum int                   `json:"start_num"`
	EndNum   int                   `json:"end_num"`
	Format   models.QuestionFormat `json:"format"`
	Renderer RendererKind          `json:"renderer"`

	Title               string `json:"title,omitempty"`
	InstructionsHTML    string `json:"instructions_html,omitempty"`
	SubInstructionsHTML string `json:"sub_instructions_html,omitempty"`
	AudioURL            string `json:"audio_url,omitempty"`
	AudioSource         string `json:"audio_source,omitempty"`

	Placeholder string `json:"placeholder,omitempty"`
	Unsupported string `json:"unsupported,omitempty"`

	MCQ       *MCQView         `json:"mcq,omitempty"`
	TFNG      *TFNGView        `json:"tfng,omitempty"`
	FillBlank *FillBlankView   `json:"fill_blank,omitempty"`
	Matching  *MatchingView    `json:"matching,omitempty"`
	Headings  *HeadingListView `json:"headings,omitempty"`
	Flowchart *FlowchartView   `json:"flowchart,omitempty"`
	MapLabel  *MapLabelingView `json:"map_label,omitempty"`
	Essay     *EssayView       `json:"essay,omitempty"`
	Speaking  *SpeakingView    `json:"speaking,omitempty"`
}

// ===== FORMAT VIEWS =====

type MCQView struct {
	PromptHTML    string             `json:"prompt_html,omitempty"`
	DisplayMode   models.DisplayMode `json:"display_mode"`
	MultiSelect   bool               `json:"multi_select"`
	MaxSelectable int                `json:"max_selectable"`
	SelectedCount int                `json:"selected_count"`
	Options       []MCQOptionView    `json:"options"`
}

type MCQOptionView struct {
	Label    string `json:"label"`
	TextHTML string `json:"text_html"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

type TFNGView struct {
	Choices    []string            `json:"choices"`
	Statements []TFNGStatementView `json:"statements"`
}

type TFNGStatementView struct {
	Num      int    `json:"num"`
	TextHTML string `json:"text_html"`
	Selected string `json:"selected,omitempty"`
}

type FillBlankView struct {
	Mode           models.InputMode     `json:"mode"`
	Segments       []PassageSegmentView `json:"segments"`
	WordBank       []WordView           `json:"word_bank,omitempty"`
	AllowDuplicate bool                 `json:"allow_duplicate"`
}

type WordView struct {
	Word      string `json:"word"`
	Available bool   `json:"available"`
}

type MatchingView struct {
	Options        []MatchPillView `json:"options"`
	Statements     []MatchSlotView `json:"statements"`
	AllowDuplicate bool            `json:"allow_duplicate"`
}

type MatchPillView struct {
	Label    string `json:"label"`
	TextHTML string `json:"text_html"`
	Assigned bool   `json:"assigned"`
	Disabled bool   `json:"disabled"`
}

type MatchSlotView struct {
	Num      int    `json:"num"`
	TextHTML string `json:"text_html"`
	Value    string `json:"value,omitempty"`
	Armed    bool   `json:"armed"`
}

// HeadingListView is the option half of heading matching.
type HeadingListView struct {
	Headings       []HeadingOptionView `json:"headings"`
	AllowDuplicate bool                `json:"allow_duplicate"`
}

type HeadingOptionView struct {
	Label    string `json:"label"`
	TextHTML string `json:"text_html"`
	Used     bool   `json:"used"`
}

type FlowchartView struct {
	Rows []FlowRowView `json:"rows"`
}

// FlowRowView renders one vertical step; multiple nodes in a row sit
// side-by-side as a branch.
type FlowRowView struct {
	Row   int            `json:"row"`
	Nodes []FlowNodeView `json:"nodes"`
}

type FlowNodeView struct {
	Type     models.FlowNodeType  `json:"type"`
	Label    string               `json:"label,omitempty"`
	Segments []PassageSegmentView `json:"segments"`
}

type MapLabelingView struct {
	ImageURL string       `json:"image_url"`
	Labels   []string     `json:"labels"`
	Rows     []MapRowView `json:"rows"`
}

type MapRowView struct {
	Num      int           `json:"num"`
	TextHTML string        `json:"text_html"`
	Selected string        `json:"selected,omitempty"`
	Cells    []MapCellView `json:"cells"`
}

type MapCellView struct {
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type EssayView struct {
	Num           int    `json:"num"`
	Text          string `json:"text"`
	WordCount     int    `json:"word_count"`
	MinWords      int    `json:"min_words,omitempty"`
	MeetsMinWords bool   `json:"meets_min_words"`
}

type SpeakingView struct {
	Category     models.SpeakingCategory `json:"category"`
	MasterDetail bool                    `json:"master_detail"`
	Subs         []SpeakingSubView       `json:"subs"`
	Detail       *SpeakingDetailView     `json:"detail,omitempty"`
	CueCard      *CueCardView            `json:"cue_card,omitempty"`
	DoneCount    int                     `json:"done_count"`
	Complete     bool                    `json:"complete"`
}

// SpeakingSubStatus drives the master-list status icons.
type SpeakingSubStatus string

const (
	SubStatusNone      SpeakingSubStatus = "none"
	SubStatusRecorded  SpeakingSubStatus = "recorded"
	SubStatusSubmitted SpeakingSubStatus = "submitted"
	SubStatusSkipped   SpeakingSubStatus = "skipped"
)

type SpeakingSubView struct {
	Idx        int               `json:"idx"`
	PromptHTML string            `json:"prompt_html"`
	AudioURL   string            `json:"audio_url,omitempty"`
	Status     SpeakingSubStatus `json:"status"`
	Active     bool              `json:"active"`
}

type SpeakingDetailView struct {
	Idx         int          `json:"idx"`
	PromptHTML  string       `json:"prompt_html"`
	AudioURL    string       `json:"audio_url,omitempty"`
	AudioSource string       `json:"audio_source,omitempty"`
	Playing     bool         `json:"playing"`
	Recorder    RecorderView `json:"recorder"`
}

// RecorderView is the contract handed to the recorder widget.
type RecorderView struct {
	QuestionID          uint    `json:"question_id"`
	SubIdx              int     `json:"sub_idx"`
	AllowResponseReset  bool    `json:"allow_response_reset"`
	IsPart2             bool    `json:"is_part2"`
	PrepTimeSeconds     int     `json:"prep_time_seconds,omitempty"`
	SpeakingTimeSeconds int     `json:"speaking_time_seconds,omitempty"`
	WaitForAudio        bool    `json:"wait_for_audio"`
	HasRecording        bool    `json:"has_recording"`
	RecordingURL        string  `json:"recording_url,omitempty"`
	DurationSeconds     float64 `json:"duration_seconds,omitempty"`
	Submitted           bool    `json:"submitted"`
	Skipped             bool    `json:"skipped"`
}

type CueCardView struct {
	TopicHTML string   `json:"topic_html"`
	Points    []string `json:"points,omitempty"`
}
