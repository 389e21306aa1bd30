package parser

import (
	"regexp"
	"strings"
)

// Canonical semantic field names resolved from header text.
const (
	FieldSlideNumber   = "slide_number"
	FieldSection       = "section"
	FieldTitle         = "title"
	FieldTranscription = "transcription"
	FieldNotes         = "notes"
	FieldFileType      = "file_type"
	FieldLesson        = "lesson"
)

// headerScanLimit is how many leading rows are considered as header
// candidates.
const headerScanLimit = 8

// requiredFields must both resolve for a sheet to be usable.
var requiredFields = []string{FieldSlideNumber, FieldTranscription}

// headerRule pairs a predicate over normalized header text with the field
// it resolves to. An empty field marks a column that is recognized but
// intentionally ignored (aggregate counters and authoring helpers).
type headerRule struct {
	matches func(text string) bool
	field   string
}

var (
	audioCounterPattern  = regexp.MustCompile(`^audio\s*#$`)
	audiosCounterPattern = regexp.MustCompile(`^#\s*audios$`)
	slidesHeaderPattern  = regexp.MustCompile(`^(#\s*)?slides?(\s*#)?$`)
)

// headerRules is evaluated top to bottom, first match wins. The counter and
// ignore rules come first so "Audio #" never resolves as a transcription
// column.
var headerRules = []headerRule{
	{matches: audioCounterPattern.MatchString, field: ""},
	{matches: func(t string) bool { return audiosCounterPattern.MatchString(t) || t == "audios" }, field: ""},
	{matches: slidesHeaderPattern.MatchString, field: FieldSlideNumber},
	{matches: exactly("slide number", "slidenumber", "slide"), field: FieldSlideNumber},
	{matches: exactly("lesson#", "lesson"), field: FieldLesson},
	{matches: containsAll("block", "section"), field: FieldSection},
	{matches: containsAll("assignable", "unit"), field: FieldTitle},
	{matches: exactly("script", "transcription", "audio"), field: FieldTranscription},
	{matches: containsAll("file location", "html"), field: FieldFileType},
	{matches: exactly("file type", "filetype", "file_type"), field: FieldFileType},
	{matches: func(t string) bool { return strings.HasPrefix(t, "notes") }, field: FieldNotes},
	{matches: exactly("occurrence", "occurence", "slide title", "slidetitle", "link to dev", "linktodev"), field: ""},
}

func exactly(values ...string) func(string) bool {
	return func(text string) bool {
		for _, v := range values {
			if text == v {
				return true
			}
		}
		return false
	}
}

func containsAll(substrings ...string) func(string) bool {
	return func(text string) bool {
		for _, s := range substrings {
			if !strings.Contains(text, s) {
				return false
			}
		}
		return true
	}
}

// MapHeader resolves raw header cell text to a canonical field name.
// It returns "" both for recognized-but-ignored columns and for text that is
// not a header at all.
func MapHeader(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	for _, rule := range headerRules {
		if rule.matches(text) {
			return rule.field
		}
	}
	return ""
}

// ResolveHeader scans the leading rows for the header row and returns its
// 1-based index plus the canonical field → 0-based column index mapping.
// The first row resolving both required fields wins; when none qualifies the
// resolver degrades to row 2, where most real sheets place their headers.
func ResolveHeader(rows [][]string) (headerRow int, cols map[string]int) {
	limit := min(len(rows), headerScanLimit)
	for r := 0; r < limit; r++ {
		cols = mapHeaderRow(rows[r])
		if _, ok := cols[FieldSlideNumber]; ok {
			if _, ok := cols[FieldTranscription]; ok {
				return r + 1, cols
			}
		}
	}
	if len(rows) >= 2 {
		return 2, mapHeaderRow(rows[1])
	}
	return 2, map[string]int{}
}

// mapHeaderRow maps one candidate row; the first column claiming a field
// keeps it.
func mapHeaderRow(row []string) map[string]int {
	cols := make(map[string]int)
	for idx, cell := range row {
		field := MapHeader(cell)
		if field == "" {
			continue
		}
		if _, taken := cols[field]; !taken {
			cols[field] = idx
		}
	}
	return cols
}

// MissingRequired reports which required fields are absent from a resolved
// column mapping.
func MissingRequired(cols map[string]int) []string {
	var missing []string
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
