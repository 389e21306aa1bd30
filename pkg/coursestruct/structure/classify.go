// Package structure builds course-structure documents from compiled sheet
// objects.
package structure

import "strings"

// Canonical block titles with fixed positions in the output document.
const (
	BlockLessonOpener       = "Lesson Opener"
	BlockAdditionalSupports = "Additional Supports"
)

// blockRule pairs a predicate over the lowercased section label with the
// canonical block title it resolves to. Rules are evaluated top to bottom,
// first match wins; the specific substrings sit above the pass-through
// fallback.
type blockRule struct {
	matches func(label string) bool
	title   string
}

var blockRules = []blockRule{
	{matches: labelIn("unit intro", "intro", "lesson opener"), title: BlockLessonOpener},
	{matches: labelContains("warm-up", "warm up", "review and repetition"), title: "Warm-up Review and Repetition"},
	{matches: labelContains("multimodal mini"), title: "Multimodal Minilesson"},
	{matches: labelContains("vocabulary booster"), title: "Vocabulary Booster"},
	{matches: labelContains("apply to reading and writing"), title: "Apply to Reading and Writing"},
	{matches: labelContains("additional supports"), title: BlockAdditionalSupports},
}

func labelIn(values ...string) func(string) bool {
	return func(label string) bool {
		for _, v := range values {
			if label == v {
				return true
			}
		}
		return false
	}
}

func labelContains(substrings ...string) func(string) bool {
	return func(label string) bool {
		for _, s := range substrings {
			if strings.Contains(label, s) {
				return true
			}
		}
		return false
	}
}

// CanonicalBlockTitle maps a free-text section label to one of the fixed
// canonical curricular block titles. Unrecognized labels pass through
// unchanged; an absent label becomes "Lesson".
func CanonicalBlockTitle(section string) string {
	trimmed := strings.TrimSpace(section)
	label := strings.ToLower(trimmed)
	for _, rule := range blockRules {
		if rule.matches(label) {
			return rule.title
		}
	}
	if trimmed == "" {
		return "Lesson"
	}
	return trimmed
}
