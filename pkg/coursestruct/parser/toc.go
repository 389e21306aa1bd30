package parser

import (
	"regexp"
	"strings"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

var slidePrefixPattern = regexp.MustCompile(`(?i)^slide\s*\d+\s*:\s*`)

// BuildToc derives the table-of-contents view from the sorted slide
// sequence: one entry per slide, with a redundant "Slide N:" title prefix
// stripped. When stripping leaves nothing the raw title stands.
func BuildToc(slides []models.Slide) []models.TocEntry {
	toc := make([]models.TocEntry, 0, len(slides))
	for _, s := range slides {
		title := ""
		if s.Title != nil {
			title = *s.Title
		}
		short := strings.TrimSpace(slidePrefixPattern.ReplaceAllString(title, ""))
		if short == "" {
			short = title
		}
		toc = append(toc, models.TocEntry{
			SlideNumber: s.SlideNumber,
			Section:     s.Section,
			Title:       short,
		})
	}
	return toc
}
