// Package parser normalizes raw lesson spreadsheet content into canonical
// slide and audio records.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

// signaturePattern locates level/unit/lesson tokens anywhere in a sheet
// title, accepting abbreviated labels and loose separators.
var signaturePattern = regexp.MustCompile(
	`(?i)(?:^|[^0-9a-z])(?:lvl|level|l)\s*[_\-\s]*?(\d+)` +
		`.*?(?:unt|unit|u)\s*[_\-\s]*?(\d+)` +
		`.*?(?:lsn|lesson|les|ls)\s*[_\-\s]*?(\d+)(?:[^0-9a-z]|$)`)

var (
	numberRun    = regexp.MustCompile(`\d+`)
	nonAlnumRuns = regexp.MustCompile(`[^0-9a-z]+`)
)

// ParseSignature extracts the sheet signature from a raw sheet title.
// Strategies are tried in order, first success wins: the structured pattern,
// the first three numeric runs, and the structured pattern against a
// squashed (lowercased, underscore-separated) form of the title.
func ParseSignature(title string) (models.SheetSignature, error) {
	name := strings.TrimSpace(title)

	if sig, ok := matchSignature(name); ok {
		return sig, nil
	}

	if nums := numberRun.FindAllString(name, -1); len(nums) >= 3 {
		level, _ := strconv.Atoi(nums[0])
		unit, _ := strconv.Atoi(nums[1])
		lesson, _ := strconv.Atoi(nums[2])
		return models.NewSheetSignature(level, unit, lesson), nil
	}

	squished := nonAlnumRuns.ReplaceAllString(strings.ToLower(name), "_")
	if sig, ok := matchSignature(squished); ok {
		return sig, nil
	}

	return models.SheetSignature{}, &SignatureError{Title: title}
}

func matchSignature(name string) (models.SheetSignature, bool) {
	m := signaturePattern.FindStringSubmatch(name)
	if m == nil {
		return models.SheetSignature{}, false
	}
	level, _ := strconv.Atoi(m[1])
	unit, _ := strconv.Atoi(m[2])
	lesson, _ := strconv.Atoi(m[3])
	return models.NewSheetSignature(level, unit, lesson), true
}
