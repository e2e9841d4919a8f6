package preview

import (
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowTwoRows = `{"nodes":[
	{"row":2,"col":1,"type":"process","content":"then [2]"},
	{"row":1,"col":2,"type":"process","content":"branch right"},
	{"row":1,"col":1,"type":"start","content":"water is [1]"}
]}`

func flowSession() *Session {
	data := newSectionData(models.SectionListening,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.Flowchart, 2, "", flowTwoRows),
	)
	return NewSession(data)
}

func TestFlowchartNodesFromOptions(t *testing.T) {
	q := newQuestion(1, models.Flowchart, 2, "", flowTwoRows)
	assert.Len(t, flowchartNodes(q), 3)
}

func TestFlowchartNodesFromContent(t *testing.T) {
	q := newQuestion(1, models.Flowchart, 1, `{"nodes":[{"row":1,"col":1,"type":"start","content":"embedded"}]}`, "")

	nodes := flowchartNodes(q)
	require.Len(t, nodes, 1)
	assert.Equal(t, "embedded", nodes[0].Content)
}

func TestFlowchartNodesEmpty(t *testing.T) {
	q := newQuestion(1, models.Flowchart, 1, "plain prose", "")
	assert.Nil(t, flowchartNodes(q))
}

func TestBuildFlowchartView(t *testing.T) {
	s := flowSession()
	require.NoError(t, s.SetBlank(1, 1, "heated"))

	view, placeholder := s.buildFlowchartView(s.Items()[0])
	require.NotNil(t, view)
	assert.Empty(t, placeholder)

	// Rows sort top to bottom, nodes within a row left to right.
	require.Len(t, view.Rows, 2)
	assert.Equal(t, 1, view.Rows[0].Row)
	require.Len(t, view.Rows[0].Nodes, 2)
	assert.Equal(t, models.FlowNodeStart, view.Rows[0].Nodes[0].Type)

	var blank *BlankView
	for _, seg := range view.Rows[0].Nodes[0].Segments {
		if seg.Blank != nil {
			blank = seg.Blank
		}
	}
	require.NotNil(t, blank)
	assert.Equal(t, 1, blank.Num)
	assert.Equal(t, "heated", blank.Value)

	require.Len(t, view.Rows[1].Nodes, 1)
	require.NotNil(t, view.Rows[1].Nodes[0].Segments[1].Blank)
	assert.Equal(t, 2, view.Rows[1].Nodes[0].Segments[1].Blank.Num)
}

func TestBuildFlowchartViewWithoutNodes(t *testing.T) {
	data := newSectionData(models.SectionListening,
		[]models.QuestionGroup{newGroup(1, 1)},
		newQuestion(1, models.Flowchart, 1, "", ""),
	)
	s := NewSession(data)

	view, placeholder := s.buildFlowchartView(s.Items()[0])
	assert.Nil(t, view)
	assert.Equal(t, "No flowchart data available for this question.", placeholder)
}
