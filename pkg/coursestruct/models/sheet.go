package models

import "github.com/tiendc/go-deepcopy"

// AudioItem represents one narrated audio entry on a slide.
type AudioItem struct {
	// Filename is the generated audio file stem: {base}_{slide}_{index},
	// where index is the 1-based counter scoped to the slide.
	Filename string `json:"filename"`
	// FileType is the normalized playback type ("Audio Bar",
	// "Embedded MP4", "Embedded MP3", or a pass-through literal).
	FileType string `json:"file_type"`
	// Transcription is the narration script (nil when the cell was empty).
	Transcription *string `json:"transcription"`
	// Notes holds author notes, omitted when empty.
	Notes string `json:"notes,omitempty"`
}

// Slide represents one content frame within a lesson.
type Slide struct {
	// SlideNumber is the 1-based slide index within the sheet.
	SlideNumber int `json:"slide_number"`
	// Lesson is the display label, e.g. "Lesson 4".
	Lesson string `json:"lesson"`
	// Section is the curricular section label carried forward across rows.
	Section *string `json:"section"`
	// Title is the slide title carried forward across rows.
	Title *string `json:"title"`
	// Audio is the ordered audio sequence for the slide.
	Audio []AudioItem `json:"audio"`
	// AudioTotal equals len(Audio).
	AudioTotal int `json:"audio_total"`
}

// TocEntry is the table-of-contents view of one slide.
type TocEntry struct {
	// SlideNumber is the slide the entry points at.
	SlideNumber int `json:"slide_number"`
	// Section is the curricular section label (nil when unknown).
	Section *string `json:"section"`
	// Title is the slide title with any redundant "Slide N:" prefix
	// stripped.
	Title string `json:"title"`
}

// SheetTotals holds per-sheet aggregate counts.
type SheetTotals struct {
	Slides     int `json:"slides"`
	AudioItems int `json:"audio_items"`
}

// SheetObject is the normalized record for one spreadsheet tab. It is built
// once by the compiler and treated as immutable afterward.
type SheetObject struct {
	// SheetName is the raw tab title.
	SheetName string `json:"sheet_name"`
	// Base is the normalized cross-reference slug from the signature.
	Base string `json:"base"`
	// Level is the curriculum level number.
	Level int `json:"level"`
	// Unit is the unit number.
	Unit int `json:"unit"`
	// LessonNum is the lesson number.
	LessonNum int `json:"lesson_num"`
	// Toc lists one entry per slide, ascending by slide number.
	Toc []TocEntry `json:"toc"`
	// Slides lists the slide records, ascending by slide number.
	Slides []Slide `json:"slides"`
	// Totals holds the per-sheet counts.
	Totals SheetTotals `json:"totals"`
	// Xcode is the external short code for the lesson, omitted when the
	// code table has no match.
	Xcode string `json:"xcode,omitempty"`
}

// Clone returns a deep copy of the sheet object. Consumers that derive new
// documents from a sheet clone it first so the compiled record stays
// immutable.
func (s *SheetObject) Clone() (*SheetObject, error) {
	var out SheetObject
	if err := deepcopy.Copy(&out, s); err != nil {
		return nil, err
	}
	return &out, nil
}

// WorkbookTotals holds workbook-level aggregate counts.
type WorkbookTotals struct {
	Sheets     int `json:"sheets"`
	Slides     int `json:"slides"`
	AudioItems int `json:"audio_items"`
}

// Workbook is the stage-1 output for one spreadsheet file.
type Workbook struct {
	// Workbook is the input file name (no path).
	Workbook string `json:"workbook"`
	// Totals holds workbook-level counts.
	Totals WorkbookTotals `json:"totals"`
	// Sheets is ordered by (unit, lesson_num, sheet_name).
	Sheets []SheetObject `json:"sheets"`
}
