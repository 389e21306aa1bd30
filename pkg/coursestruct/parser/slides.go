package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

// fileTypeSynonyms normalizes raw file-type cells. Keys are lowercased with
// collapsed whitespace; unmatched values pass through trimmed.
var fileTypeSynonyms = map[string]string{
	"audio":        "Audio Bar",
	"audio bar":    "Audio Bar",
	"embedded mp4": "Embedded MP4",
	"mp4":          "Embedded MP4",
	"video":        "Embedded MP4",
	"embedded mp3": "Embedded MP3",
	"mp3":          "Embedded MP3",
}

// NormalizeFileType maps a raw file-type cell to its canonical playback
// type. Blank cells default to "Audio Bar".
func NormalizeFileType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Audio Bar"
	}
	if canon, ok := fileTypeSynonyms[clean(strings.ToLower(trimmed))]; ok {
		return canon
	}
	return trimmed
}

// carryState holds the values a row inherits from its predecessor: a blank
// slide cell continues the previous slide, and blank section/title cells
// inherit the previous non-blank value.
type carryState struct {
	slide    int
	hasSlide bool
	section  string
	title    string
}

// Aggregator streams data rows for one sheet and groups them into slide
// records with per-slide audio counters.
type Aggregator struct {
	base    string
	lesson  int
	cols    map[string]int
	state   carryState
	counts  map[int]int
	slides  map[int]*models.Slide
	skipped int
}

// NewAggregator returns an aggregator for one sheet's data rows.
func NewAggregator(sig models.SheetSignature, cols map[string]int) *Aggregator {
	return &Aggregator{
		base:   sig.Base,
		lesson: sig.Lesson,
		cols:   cols,
		counts: make(map[int]int),
		slides: make(map[int]*models.Slide),
	}
}

// ConsumeRow applies one data row. Rows with malformed slide cells, rows
// before any slide number has been seen, and rows with no content are
// skipped; row problems never abort the pass.
func (a *Aggregator) ConsumeRow(row []string) {
	slideCell := strings.TrimSpace(a.cell(row, FieldSlideNumber))
	if slideCell == "" {
		if !a.state.hasSlide {
			a.skipped++
			return
		}
	} else {
		n, ok := cellInt(slideCell)
		if !ok {
			a.skipped++
			return
		}
		a.state.slide = n
		a.state.hasSlide = true
		// Initialize the counter only on first sight: a slide number
		// reappearing later keeps appending, so filenames stay unique.
		if _, seen := a.counts[n]; !seen {
			a.counts[n] = 0
		}
	}
	slide := a.state.slide

	section := clean(a.cell(row, FieldSection))
	if section == "" {
		section = a.state.section
	}
	title := clean(a.cell(row, FieldTitle))
	if title == "" {
		title = a.state.title
	}
	a.state.section, a.state.title = section, title

	transcript := clean(a.cell(row, FieldTranscription))
	notes := clean(a.cell(row, FieldNotes))
	fileType := strings.TrimSpace(a.cell(row, FieldFileType))
	if transcript == "" && notes == "" && fileType == "" {
		a.skipped++
		return
	}

	if _, ok := a.slides[slide]; !ok {
		a.slides[slide] = &models.Slide{
			SlideNumber: slide,
			Lesson:      fmt.Sprintf("Lesson %d", a.lesson),
			Section:     optional(section),
			Title:       optional(title),
		}
	}

	a.counts[slide]++
	item := models.AudioItem{
		Filename:      fmt.Sprintf("%s_%d_%d", a.base, slide, a.counts[slide]),
		FileType:      NormalizeFileType(fileType),
		Transcription: optional(transcript),
		Notes:         notes,
	}
	a.slides[slide].Audio = append(a.slides[slide].Audio, item)
}

// Slides returns the aggregated slides sorted ascending by slide number,
// with each audio total set to its final sequence length.
func (a *Aggregator) Slides() []models.Slide {
	out := make([]models.Slide, 0, len(a.slides))
	for _, s := range a.slides {
		s.AudioTotal = len(s.Audio)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlideNumber < out[j].SlideNumber })
	return out
}

// SkippedRows reports how many rows the pass absorbed without producing an
// audio item.
func (a *Aggregator) SkippedRows() int {
	return a.skipped
}

func (a *Aggregator) cell(row []string, field string) string {
	idx, ok := a.cols[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// cellInt coerces a trimmed cell to an integer, accepting float renderings
// of whole numbers.
func cellInt(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

// clean trims a cell and collapses internal whitespace runs.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
