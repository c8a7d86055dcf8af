package lyric

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTimed(t *testing.T) {
	assert.True(t, IsTimed(0))
	assert.True(t, IsTimed(12.5))
	assert.False(t, IsTimed(Untimed))
	assert.False(t, IsTimed(-0.01))
	assert.False(t, IsTimed(math.Inf(1)))
	assert.False(t, IsTimed(math.NaN()))
}

func TestCompareTimestampsOrdersUntimedLast(t *testing.T) {
	lines := []Line{
		{Text: "u1", Timestamp: Untimed},
		{Text: "b", Timestamp: 2},
		{Text: "u2", Timestamp: math.NaN()},
		{Text: "a", Timestamp: 1},
		{Text: "b2", Timestamp: 2},
	}

	slices.SortStableFunc(lines, func(a, b Line) int { return CompareTimestamps(a.Timestamp, b.Timestamp) })

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"a", "b", "b2", "u1", "u2"}, texts)
}

func TestDocumentHelpers(t *testing.T) {
	doc := Document{
		Tags:  []string{"[ti:x]"},
		Lines: []Line{{Text: "a\nb", Timestamp: 1}, {Text: "c", Timestamp: Untimed}},
	}
	assert.True(t, doc.IsTimestamped())
	assert.False(t, doc.IsEmpty())
	assert.True(t, Document{}.IsEmpty())
	assert.False(t, Document{Lines: []Line{{Text: "x", Timestamp: Untimed}}}.IsTimestamped())

	plain := doc.WithoutTimestamps()
	assert.Equal(t, []Line{
		{Text: "a", Timestamp: Untimed},
		{Text: "b", Timestamp: Untimed},
		{Text: "c", Timestamp: Untimed},
	}, plain.Lines)
	assert.Equal(t, doc.Tags, plain.Tags)
	assert.True(t, doc.IsTimestamped(), "original must be untouched")
}

func TestCloneIsIndependent(t *testing.T) {
	doc := Document{Tags: []string{"[ti:x]"}, Lines: []Line{{Text: "a", Timestamp: 1}}}

	clone := doc.Clone()
	clone.Tags[0] = "[ti:y]"
	clone.Lines[0].Text = "b"

	assert.Equal(t, "[ti:x]", doc.Tags[0])
	assert.Equal(t, "a", doc.Lines[0].Text)
}
