package coursestruct

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/codes"
	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/parser"
)

// writeLessonSheet fills one tab with a junk first row, headers on row 2,
// and the provided data rows, mirroring the common authoring layout.
func writeLessonSheet(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	headers := []interface{}{"Slide #", "Block/Section", "Assignable Unit", "Audio", "File Type", "Notes", "Audio #"}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Authoring sheet - do not edit"}); err != nil {
		t.Fatalf("set title row: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &headers); err != nil {
		t.Fatalf("set header row: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set data row: %v", err)
		}
	}
}

func saveWorkbook(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lessons.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestCompileWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// Lesson 3 authored on the first tab, lesson 2 on the second: the
	// compiled output must sort by (unit, lesson, name) regardless.
	if err := f.SetSheetName("Sheet1", "Level 3 Unit 5 Lesson 3"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if _, err := f.NewSheet("Level 3 Unit 5 Lesson 2"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	writeLessonSheet(t, f, "Level 3 Unit 5 Lesson 3", [][]interface{}{
		{1, "Intro", "Slide 1: Welcome", "Hello", "", "", 1},
	})
	writeLessonSheet(t, f, "Level 3 Unit 5 Lesson 2", [][]interface{}{
		{1, "Intro", "Slide 1: Welcome", "Hello", "", "", 1},
		{"", "", "", "Second take", "", "", 2},
		{2, "Warm-Up", "Slide 2: Sounds", "Repeat after me", "mp4", "watch pacing", 1},
	})

	path := saveWorkbook(t, f)

	table := codes.Table{"level_3_unit_5_lesson_2": "X7KQ2"}
	wb, err := CompileWorkbook(path, Options{Codes: table})
	if err != nil {
		t.Fatalf("CompileWorkbook failed: %v", err)
	}

	if wb.Workbook != "lessons.xlsx" {
		t.Errorf("workbook name = %q, want lessons.xlsx", wb.Workbook)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(wb.Sheets))
	}
	if wb.Sheets[0].LessonNum != 2 || wb.Sheets[1].LessonNum != 3 {
		t.Errorf("sheets not sorted by lesson: got %d then %d", wb.Sheets[0].LessonNum, wb.Sheets[1].LessonNum)
	}

	lesson2 := wb.Sheets[0]
	if lesson2.Base != "level_3_unit_5_lesson_2" {
		t.Errorf("base = %q", lesson2.Base)
	}
	if lesson2.Xcode != "X7KQ2" {
		t.Errorf("xcode = %q, want X7KQ2", lesson2.Xcode)
	}
	if lesson2.Totals.Slides != 2 || lesson2.Totals.AudioItems != 3 {
		t.Errorf("lesson 2 totals = %+v, want 2 slides / 3 audio items", lesson2.Totals)
	}
	if len(lesson2.Toc) != 2 || lesson2.Toc[0].Title != "Welcome" {
		t.Errorf("toc = %+v, want stripped titles", lesson2.Toc)
	}

	// The sheet without a code entry carries no xcode.
	if wb.Sheets[1].Xcode != "" {
		t.Errorf("lesson 3 xcode = %q, want empty", wb.Sheets[1].Xcode)
	}

	// Workbook totals equal the sum of sheet totals.
	slides, audio := 0, 0
	for _, s := range wb.Sheets {
		slides += s.Totals.Slides
		audio += s.Totals.AudioItems
		perSheet := 0
		for _, sl := range s.Slides {
			perSheet += sl.AudioTotal
		}
		if perSheet != s.Totals.AudioItems {
			t.Errorf("sheet %q audio totals inconsistent: %d vs %d", s.SheetName, perSheet, s.Totals.AudioItems)
		}
	}
	if wb.Totals.Slides != slides || wb.Totals.AudioItems != audio || wb.Totals.Sheets != 2 {
		t.Errorf("workbook totals = %+v, want sheets=2 slides=%d audio=%d", wb.Totals, slides, audio)
	}
}

func TestCompileWorkbookWarnsOnSkippedRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Level 3 Unit 5 Lesson 2"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	writeLessonSheet(t, f, "Level 3 Unit 5 Lesson 2", [][]interface{}{
		// Malformed slide cell: the row is skipped, not fatal.
		{"one", "Intro", "Slide 1: Bad", "orphan narration", "", "", 1},
		{1, "Intro", "Slide 1: Welcome", "Hello", "", "", 1},
	})
	path := saveWorkbook(t, f)

	core, logs := observer.New(zapcore.WarnLevel)
	wb, err := CompileWorkbook(path, Options{Logger: zap.New(core).Sugar()})
	if err != nil {
		t.Fatalf("CompileWorkbook failed: %v", err)
	}
	if wb.Sheets[0].Totals.Slides != 1 {
		t.Errorf("slides = %d, want 1 (malformed row dropped)", wb.Sheets[0].Totals.Slides)
	}

	entries := logs.FilterMessage("skipped rows").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 skipped-rows warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["sheet"] != "Level 3 Unit 5 Lesson 2" {
		t.Errorf("warning sheet = %v", fields["sheet"])
	}
	if fields["rows"] != int64(1) {
		t.Errorf("warning rows = %v, want 1", fields["rows"])
	}
}

func TestCompileWorkbookBadSheetName(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	// Default sheet name carries no level/unit/lesson triple.
	path := saveWorkbook(t, f)

	_, err := CompileWorkbook(path, DefaultOptions())
	if err == nil {
		t.Fatal("expected signature error for unparseable sheet name")
	}
	var sigErr *parser.SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected *parser.SignatureError, got %v", err)
	}
}

func TestCompileWorkbookMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Level 3 Unit 5 Lesson 2"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	headers := []interface{}{"Slide #", "Notes"}
	if err := f.SetSheetRow("Level 3 Unit 5 Lesson 2", "A2", &headers); err != nil {
		t.Fatalf("set header row: %v", err)
	}
	path := saveWorkbook(t, f)

	_, err := CompileWorkbook(path, DefaultOptions())
	if err == nil {
		t.Fatal("expected missing columns error")
	}
	var colErr *parser.MissingColumnsError
	if !errors.As(err, &colErr) {
		t.Fatalf("expected *parser.MissingColumnsError, got %v", err)
	}
	if len(colErr.Missing) != 1 || colErr.Missing[0] != parser.FieldTranscription {
		t.Errorf("missing = %v, want [transcription]", colErr.Missing)
	}
}
