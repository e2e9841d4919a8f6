package preview

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/utils"
)

// ToggleMapCell applies a (statement, label) cell click: selecting a cell
// overwrites any prior selection for that statement row; clicking the
// already-selected cell clears it.
func (s *Session) ToggleMapCell(startNum, statementIdx int, label string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	q := item.Question
	if q.QuestionFormat != models.MapLabeling {
		return fmt.Errorf("question at %d is %s, not map labeling", startNum, q.QuestionFormat)
	}

	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.MapLabel == nil {
		return fmt.Errorf("question at %d has no map labeling data", startNum)
	}
	valid := false
	for _, l := range opts.MapLabel.Labels {
		if l == label {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("label %q is not on the map", label)
	}

	num, err := blankNum(item, statementIdx)
	if err != nil {
		return err
	}

	if s.answers[num] == label {
		return s.SetAnswer(num, "")
	}
	return s.SetAnswer(num, label)
}

func (s *Session) buildMapLabelingView(item QuestionItem, cdn *utils.CDNResolver) (*MapLabelingView, string) {
	q := item.Question
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.MapLabel == nil || len(opts.MapLabel.Items) == 0 {
		return nil, "No map data available for this question."
	}

	imageURL := opts.MapLabel.ImageURL
	if cdn != nil {
		imageURL = cdn.Resolve(imageURL)
	}

	view := &MapLabelingView{
		ImageURL: imageURL,
		Labels:   opts.MapLabel.Labels,
	}

	for i, stmt := range opts.MapLabel.Items {
		num := item.StartNum + i
		if num > item.EndNum {
			break
		}
		selected := s.answers[num]
		row := MapRowView{
			Num:      num,
			TextHTML: sanitize.HTMLForDisplay(stmt.Text),
			Selected: selected,
		}
		for _, label := range opts.MapLabel.Labels {
			row.Cells = append(row.Cells, MapCellView{Label: label, Selected: selected == label})
		}
		view.Rows = append(view.Rows, row)
	}

	return view, ""
}
