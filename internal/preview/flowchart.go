package preview

import (
	"encoding/json"
	"sort"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
)

// flowchartNodes resolves the node list: options_data.nodes first, then a
// {"nodes": [...]} shape inside question content. Parse failures fall
// through silently; the caller renders a placeholder when nothing usable
// remains.
func flowchartNodes(q *models.Question) []models.FlowNode {
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.Flowchart != nil && len(opts.Flowchart.Nodes) > 0 {
		return opts.Flowchart.Nodes
	}

	var embedded models.FlowchartOptions
	if err := json.Unmarshal([]byte(q.Content), &embedded); err == nil && len(embedded.Nodes) > 0 {
		return embedded.Nodes
	}
	return nil
}

func (s *Session) buildFlowchartView(item QuestionItem) (*FlowchartView, string) {
	nodes := flowchartNodes(item.Question)
	if len(nodes) == 0 {
		return nil, "No flowchart data available for this question."
	}

	// Nodes sharing a row render side-by-side as a branch; rows render
	// top-to-bottom connected by arrows.
	byRow := make(map[int][]models.FlowNode)
	for _, node := range nodes {
		byRow[node.Row] = append(byRow[node.Row], node)
	}

	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	view := &FlowchartView{}
	for _, row := range rows {
		rowNodes := byRow[row]
		sort.SliceStable(rowNodes, func(i, j int) bool { return rowNodes[i].Col < rowNodes[j].Col })

		rowView := FlowRowView{Row: row}
		for _, node := range rowNodes {
			nodeView := FlowNodeView{Type: node.Type, Label: node.Label}
			for _, seg := range SplitMarkers(sanitize.HTMLForDisplay(node.Content)) {
				nodeView.Segments = append(nodeView.Segments, s.passageSegment(item, seg, nil))
			}
			rowView.Nodes = append(rowView.Nodes, nodeView)
		}
		view.Rows = append(view.Rows, rowView)
	}

	return view, ""
}
