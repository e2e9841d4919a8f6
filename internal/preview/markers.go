package preview

import (
	"regexp"
	"strconv"
)

// Inline blank markers look like [1], [2], ... with indices relative to the
// containing question. The tokenizer splits authored HTML around them while
// leaving the surrounding markup untouched, so a marker inside a <td> stays
// an inline slot within the table cell.

var markerRe = regexp.MustCompile(`\[(\d+)\]`)

// Segment is either a run of HTML or a blank slot. BlankIndex is 1-based and
// relative to the question; 0 means the segment is plain HTML.
type Segment struct {
	HTML       string `json:"html,omitempty"`
	BlankIndex int    `json:"blank_index,omitempty"`
}

// SplitMarkers tokenizes content into HTML runs and blank slots.
func SplitMarkers(content string) []Segment {
	if content == "" {
		return nil
	}

	locs := markerRe.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return []Segment{{HTML: content}}
	}

	var segments []Segment
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segments = append(segments, Segment{HTML: content[prev:loc[0]]})
		}
		idx, err := strconv.Atoi(content[loc[2]:loc[3]])
		if err != nil || idx < 1 {
			// Not a usable marker; keep the literal text.
			segments = append(segments, Segment{HTML: content[loc[0]:loc[1]]})
		} else {
			segments = append(segments, Segment{BlankIndex: idx})
		}
		prev = loc[1]
	}
	if prev < len(content) {
		segments = append(segments, Segment{HTML: content[prev:]})
	}
	return segments
}

// HasMarkers reports whether content contains at least one [N] marker.
func HasMarkers(content string) bool {
	return markerRe.MatchString(content)
}

// MarkerCount returns the number of [N] markers in content.
func MarkerCount(content string) int {
	return len(markerRe.FindAllString(content, -1))
}
