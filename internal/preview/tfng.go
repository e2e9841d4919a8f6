package preview

import (
	"fmt"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/sanitize"
)

var (
	tfngChoices = []string{"true", "false", "not_given"}
	ynngChoices = []string{"yes", "no", "not_given"}
)

func tfngChoicesFor(format models.QuestionFormat) []string {
	if format == models.YesNoNG {
		return ynngChoices
	}
	return tfngChoices
}

// tfngStatements resolves the statement list: options_data items/statements
// when present, otherwise the question content repeated item_count times
// with placeholder labels.
func tfngStatements(q *models.Question) []models.TFNGStatement {
	opts := models.ParseOptions(q.QuestionFormat, q.OptionsData)
	if opts.TFNG != nil {
		if stmts := opts.TFNG.AllStatements(); len(stmts) > 0 {
			return stmts
		}
	}

	fallback := make([]models.TFNGStatement, q.Items())
	for i := range fallback {
		text := q.Content
		if text == "" {
			text = fmt.Sprintf("Statement %d", i+1)
		}
		fallback[i] = models.TFNGStatement{Text: text}
	}
	return fallback
}

// SelectStatementChoice records one of the three mutually exclusive choices
// for a statement. statementIdx is 1-based within the question; storing a
// single value per number gives radio semantics for free.
func (s *Session) SelectStatementChoice(startNum, statementIdx int, choice string) error {
	item, err := s.itemByStart(startNum)
	if err != nil {
		return err
	}
	q := item.Question
	if q.QuestionFormat != models.TrueFalseNG && q.QuestionFormat != models.YesNoNG {
		return fmt.Errorf("question at %d is %s, not a true/false format", startNum, q.QuestionFormat)
	}

	valid := false
	for _, c := range tfngChoicesFor(q.QuestionFormat) {
		if c == choice {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid choice %q for %s", choice, q.QuestionFormat)
	}

	num := item.StartNum + statementIdx - 1
	if statementIdx < 1 || num > item.EndNum {
		return fmt.Errorf("statement index %d outside question range", statementIdx)
	}
	return s.SetAnswer(num, choice)
}

func (s *Session) buildTFNGView(item QuestionItem) (*TFNGView, string) {
	q := item.Question
	statements := tfngStatements(q)
	if len(statements) == 0 {
		return nil, "No statements available for this question."
	}

	view := &TFNGView{Choices: tfngChoicesFor(q.QuestionFormat)}
	for i, stmt := range statements {
		num := item.StartNum + i
		if num > item.EndNum {
			break
		}
		view.Statements = append(view.Statements, TFNGStatementView{
			Num:      num,
			TextHTML: sanitize.HTMLForDisplay(stmt.Text),
			Selected: s.answers[num],
		})
	}
	return view, ""
}
