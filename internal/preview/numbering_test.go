package preview

import (
	"testing"

	"github.com/lexistestcenter-byte/lexistest-admin-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildItems(t *testing.T) {
	q1 := newQuestion(1, models.TrueFalseNG, 4, "", "")
	q2 := newQuestion(2, models.MCQSingle, 1, "", "")
	q3 := newQuestion(3, models.FillBlankTyping, 3, "", "")

	blockID := uint(7)
	g1 := newGroup(10, 1, 2)
	g1.ContentBlockID = &blockID
	g2 := newGroup(11, 3)

	items, total := BuildItems(
		[]models.QuestionGroup{g1, g2},
		map[uint]*models.Question{1: q1, 2: q2, 3: q3},
	)

	require.Len(t, items, 3)
	assert.Equal(t, 8, total)

	assert.Equal(t, 1, items[0].StartNum)
	assert.Equal(t, 4, items[0].EndNum)
	assert.Equal(t, uint(10), items[0].GroupID)
	require.NotNil(t, items[0].ContentBlockID)
	assert.Equal(t, uint(7), *items[0].ContentBlockID)

	assert.Equal(t, 5, items[1].StartNum)
	assert.Equal(t, 5, items[1].EndNum)

	assert.Equal(t, 6, items[2].StartNum)
	assert.Equal(t, 8, items[2].EndNum)
	assert.Equal(t, uint(11), items[2].GroupID)
	assert.Nil(t, items[2].ContentBlockID)
}

func TestBuildItemsSkipsMissingQuestions(t *testing.T) {
	q1 := newQuestion(1, models.MCQSingle, 1, "", "")
	q3 := newQuestion(3, models.MCQSingle, 2, "", "")

	items, total := BuildItems(
		[]models.QuestionGroup{newGroup(10, 1, 2, 3)},
		map[uint]*models.Question{1: q1, 3: q3},
	)

	require.Len(t, items, 2)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, items[1].StartNum)
	assert.Equal(t, 3, items[1].EndNum)
}

func TestBuildItemsEmpty(t *testing.T) {
	items, total := BuildItems(nil, nil)
	assert.Empty(t, items)
	assert.Equal(t, 0, total)
}

func TestQuestionItemCovers(t *testing.T) {
	item := QuestionItem{StartNum: 3, EndNum: 5}
	assert.Equal(t, 3, item.Width())
	assert.False(t, item.Covers(2))
	assert.True(t, item.Covers(3))
	assert.True(t, item.Covers(5))
	assert.False(t, item.Covers(6))
}

func TestNumberRangeString(t *testing.T) {
	assert.Equal(t, "5", NumberRange{Start: 5, End: 5}.String())
	assert.Equal(t, "5–6", NumberRange{Start: 5, End: 6}.String())
}

func TestGroupRangesKeptPerQuestion(t *testing.T) {
	items := []QuestionItem{
		{StartNum: 5, EndNum: 6, GroupID: 1},
		{StartNum: 7, EndNum: 8, GroupID: 1},
		{StartNum: 9, EndNum: 9, GroupID: 2},
	}

	ranges := GroupRanges(items, 1)
	require.Len(t, ranges, 2)
	assert.Equal(t, NumberRange{Start: 5, End: 6}, ranges[0])
	assert.Equal(t, NumberRange{Start: 7, End: 8}, ranges[1])

	assert.Empty(t, GroupRanges(items, 99))
}

func TestAutoTitle(t *testing.T) {
	tests := []struct {
		name   string
		ranges []NumberRange
		want   string
	}{
		{"empty", nil, ""},
		{"single slot", []NumberRange{{5, 5}}, "Question 5"},
		{"single range", []NumberRange{{1, 4}}, "Questions 1–4"},
		{"two ranges", []NumberRange{{5, 6}, {7, 8}}, "Questions 5–6 and 7–8"},
		{"three ranges", []NumberRange{{1, 4}, {5, 8}, {9, 13}}, "Questions 1–4, 5–8 and 9–13"},
		{"mixed widths", []NumberRange{{1, 1}, {2, 3}}, "Questions 1 and 2–3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AutoTitle(tt.ranges))
		})
	}
}
