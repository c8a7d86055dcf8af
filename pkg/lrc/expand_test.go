package lrc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yleoer/lyrics/pkg/lyric"
)

func docWith(lines ...lyric.Line) lyric.Document {
	return lyric.Document{Lines: lines}
}

func TestExpandSplitsLinesWithMatchingTimestamps(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "line1Part1\nline1Part2", Timestamp: 149.75},
		lyric.Line{Text: "line2Part1\nline2Part2\nline2Part3", Timestamp: 153.09},
	)

	want := "[02:29.75]line1Part1\r\n" +
		"[02:29.75]line1Part2\r\n" +
		"[02:33.09]line2Part1\r\n" +
		"[02:33.09]line2Part2\r\n" +
		"[02:33.09]line2Part3\r\n"
	assert.Equal(t, want, Expand(doc, false))
}

func TestExpandSplitsThenMergesMatchingLines(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "linePart1\nlinePart2", Timestamp: 149.75},
		lyric.Line{Text: "linePart1\nlinePart2\nlinePart3", Timestamp: 153.09},
	)

	want := "[02:29.75][02:33.09]linePart1\r\n" +
		"[02:29.75][02:33.09]linePart2\r\n" +
		"[02:33.09]linePart3\r\n"
	assert.Equal(t, want, Expand(doc, true))
}

func TestExpandKeepsSplitLinesInOriginalOrder(t *testing.T) {
	// 非字典序，合并时的排序不能改变它们的先后
	doc := docWith(lyric.Line{Text: "lineBBBB\nlineAAAA", Timestamp: 149.75})

	assert.Equal(t, "[02:29.75]lineBBBB\r\n[02:29.75]lineAAAA\r\n", Expand(doc, true))
}

func TestExpandMergesOnlyWhenRequested(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "thebestline", Timestamp: 5},
		lyric.Line{Text: "thebestline", Timestamp: 10},
		lyric.Line{Text: "anotherline", Timestamp: 12},
		lyric.Line{Text: "anotherline", Timestamp: 14},
	)

	assert.Equal(t,
		"[00:05.00]thebestline\r\n[00:10.00]thebestline\r\n[00:12.00]anotherline\r\n[00:14.00]anotherline\r\n",
		Expand(doc, false))
	assert.Equal(t,
		"[00:05.00][00:10.00]thebestline\r\n[00:12.00][00:14.00]anotherline\r\n",
		Expand(doc, true))
}

func TestExpandMergesMatchingLinesWithMatchingTimestamps(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "thebestline-part1", Timestamp: 5},
		lyric.Line{Text: "thebestline-part2", Timestamp: 5},
		lyric.Line{Text: "anotherline-part1", Timestamp: 10},
		lyric.Line{Text: "anotherline-part2", Timestamp: 10},
		lyric.Line{Text: "thebestline-part1", Timestamp: 15},
		lyric.Line{Text: "thebestline-part2", Timestamp: 15},
	)

	want := "[00:05.00][00:15.00]thebestline-part1\r\n" +
		"[00:05.00][00:15.00]thebestline-part2\r\n" +
		"[00:10.00]anotherline-part1\r\n" +
		"[00:10.00]anotherline-part2\r\n"
	assert.Equal(t, want, Expand(doc, true))
}

func TestExpandMergesMatchingLinesInTimestampOrder(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "", Timestamp: 0.0},
		lyric.Line{Text: "13", Timestamp: 0.83},
		lyric.Line{Text: "14", Timestamp: 10.79},
		lyric.Line{Text: "15", Timestamp: 18.31},
		lyric.Line{Text: "", Timestamp: 20.96},
		lyric.Line{Text: "16", Timestamp: 35.27},
		lyric.Line{Text: "17", Timestamp: 44.97},
		lyric.Line{Text: "18", Timestamp: 50.21},
		lyric.Line{Text: "", Timestamp: 54.53},
		lyric.Line{Text: "19", Timestamp: 54.66},
		lyric.Line{Text: "20", Timestamp: 60.05},
		lyric.Line{Text: "21", Timestamp: 64.40},
		lyric.Line{Text: "22", Timestamp: 69.90},
		lyric.Line{Text: "", Timestamp: 75.51},
		lyric.Line{Text: "23", Timestamp: 79.39},
		lyric.Line{Text: "24", Timestamp: 89.12},
		lyric.Line{Text: "1", Timestamp: 94.28},
		lyric.Line{Text: "", Timestamp: 98.51},
		lyric.Line{Text: "2", Timestamp: 98.72},
		lyric.Line{Text: "3", Timestamp: 104.10},
		lyric.Line{Text: "4", Timestamp: 108.52},
		lyric.Line{Text: "22", Timestamp: 113.96},
		lyric.Line{Text: "", Timestamp: 119.64},
		lyric.Line{Text: "5", Timestamp: 137.93},
		lyric.Line{Text: "6", Timestamp: 148.06},
		lyric.Line{Text: "7", Timestamp: 154.95},
		lyric.Line{Text: "", Timestamp: 161.98},
		lyric.Line{Text: "20", Timestamp: 167.83},
		lyric.Line{Text: "", Timestamp: 172.02},
		lyric.Line{Text: "8", Timestamp: 172.14},
		lyric.Line{Text: "9", Timestamp: 177.64},
		lyric.Line{Text: "10", Timestamp: 182.76},
		lyric.Line{Text: "11", Timestamp: 186.76},
		lyric.Line{Text: "", Timestamp: 189.80},
	)

	want := "[00:00.00][00:20.96][00:54.53][01:15.51][01:38.51][01:59.64][02:41.98][02:52.02][03:09.80]\r\n" +
		"[00:00.83]13\r\n" +
		"[00:10.79]14\r\n" +
		"[00:18.31]15\r\n" +
		"[00:35.27]16\r\n" +
		"[00:44.97]17\r\n" +
		"[00:50.21]18\r\n" +
		"[00:54.66]19\r\n" +
		"[01:00.05][02:47.83]20\r\n" +
		"[01:04.40]21\r\n" +
		"[01:09.90][01:53.96]22\r\n" +
		"[01:19.39]23\r\n" +
		"[01:29.12]24\r\n" +
		"[01:34.28]1\r\n" +
		"[01:38.72]2\r\n" +
		"[01:44.10]3\r\n" +
		"[01:48.52]4\r\n" +
		"[02:17.93]5\r\n" +
		"[02:28.06]6\r\n" +
		"[02:34.95]7\r\n" +
		"[02:52.14]8\r\n" +
		"[02:57.64]9\r\n" +
		"[03:02.76]10\r\n" +
		"[03:06.76]11\r\n"
	assert.Equal(t, want, Expand(doc, true))
}

func TestExpandPlacesUntimedLinesBare(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "timeline1", Timestamp: 1},
		lyric.Line{Text: "timeline2", Timestamp: 2},
		lyric.Line{Text: "untimed", Timestamp: lyric.Untimed},
		lyric.Line{Text: "timeline1", Timestamp: lyric.Untimed},
	)

	assert.Equal(t, "[00:01.00]timeline1\r\n[00:02.00]timeline2\r\nuntimed\r\ntimeline1\r\n", Expand(doc, true))
}

func TestExpandUntimedDocumentPadsEmptyLines(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "verse", Timestamp: lyric.Untimed},
		lyric.Line{Text: "", Timestamp: lyric.Untimed},
		lyric.Line{Text: "chorus", Timestamp: lyric.Untimed},
	)

	assert.Equal(t, "verse\r\n \r\nchorus\r\n", Expand(doc, false))
	assert.Equal(t, "verse\r\n\r\nchorus\r\n", Shrink(doc, false))
}

func TestShrinkStripsPadding(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "a", Timestamp: 1},
		lyric.Line{Text: " ", Timestamp: lyric.Untimed},
	)

	assert.Equal(t, "[00:01.00]a\r\n \r\n", Expand(doc, false))
	assert.Equal(t, "[00:01.00]a\r\n\r\n", Shrink(doc, false))
}

func TestExpandWritesTagsFirst(t *testing.T) {
	doc := lyric.Document{
		Tags:  []string{"[ti:title]", "[offset:100]"},
		Lines: []lyric.Line{{Text: "a", Timestamp: 1}},
	}

	assert.Equal(t, "[ti:title]\r\n[offset:100]\r\n\r\n[00:01.00]a\r\n", Expand(doc, false))
}

func TestExpandEmptyDocument(t *testing.T) {
	assert.Equal(t, "", Expand(lyric.Document{}, true))
	assert.Equal(t, "[ti:x]\r\n\r\n", Expand(lyric.Document{Tags: []string{"[ti:x]"}}, false))
}

func TestExpandDoesNotModifyInput(t *testing.T) {
	doc := docWith(
		lyric.Line{Text: "a\nb", Timestamp: 1},
		lyric.Line{Text: "a\nb", Timestamp: 2},
	)
	before := doc.Clone()

	_ = Expand(doc, true)

	assert.Equal(t, before, doc)
}

func TestParseExpandRoundTrip(t *testing.T) {
	docs := map[string]lyric.Document{
		"timed with tags": {
			Tags: []string{"[ar:Artist]", "[ti:Title]", "[offset:-250]"},
			Lines: []lyric.Line{
				{Text: "hello\nworld", Timestamp: 1.5},
				{Text: "", Timestamp: 3},
				{Text: "hello", Timestamp: 4.25},
				{Text: "[not a timestamp", Timestamp: 62.01},
				{Text: "after the song", Timestamp: lyric.Untimed},
				{Text: "", Timestamp: lyric.Untimed},
			},
			TimestampOffset: -0.25,
		},
		"untimed": {
			Lines: []lyric.Line{
				{Text: "first", Timestamp: lyric.Untimed},
				{Text: "second", Timestamp: lyric.Untimed},
			},
		},
		"long track": {
			Lines: []lyric.Line{
				{Text: "late", Timestamp: 3725.5},
			},
		},
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			for _, merge := range []bool{false, true} {
				text := Expand(doc, merge)
				reparsed := Parse(lyric.TrackMetadata{}, text)

				assert.Equal(t, doc.Tags, reparsed.Tags)
				assert.Equal(t, doc.Lines, reparsed.Lines)
				assert.Equal(t, doc.TimestampOffset, reparsed.TimestampOffset)
				assert.Equal(t, text, Expand(reparsed, merge))
			}
		})
	}
}
