package coursestruct

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/parser"
)

// CompileWorkbook reads an Excel workbook and compiles every tab into a
// normalized sheet object. A signature or header failure on any tab aborts
// the whole workbook: continuing would silently produce a wrong
// cross-reference key for the rest of the pipeline.
func CompileWorkbook(path string, opts Options) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log := opts.logger()
	bookName := filepath.Base(path)

	var sheets []models.SheetObject
	grandSlides := 0
	grandAudio := 0

	for _, sheetName := range f.GetSheetList() {
		sheet, err := compileSheet(f, sheetName, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bookName, err)
		}
		log.Debugw("compiled sheet",
			"workbook", bookName,
			"sheet", sheetName,
			"slides", sheet.Totals.Slides,
			"audio_items", sheet.Totals.AudioItems,
		)
		sheets = append(sheets, *sheet)
		grandSlides += sheet.Totals.Slides
		grandAudio += sheet.Totals.AudioItems
	}

	sort.Slice(sheets, func(i, j int) bool {
		a, b := sheets[i], sheets[j]
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		if a.LessonNum != b.LessonNum {
			return a.LessonNum < b.LessonNum
		}
		return a.SheetName < b.SheetName
	})

	return &models.Workbook{
		Workbook: bookName,
		Totals: models.WorkbookTotals{
			Sheets:     len(sheets),
			Slides:     grandSlides,
			AudioItems: grandAudio,
		},
		Sheets: sheets,
	}, nil
}

// compileSheet composes the parser stages for one tab: signature, header
// resolution, slide aggregation, and the toc view.
func compileSheet(f *excelize.File, sheetName string, opts Options) (*models.SheetObject, error) {
	sig, err := parser.ParseSignature(sheetName)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	headerRow, cols := parser.ResolveHeader(rows)
	if missing := parser.MissingRequired(cols); len(missing) > 0 {
		return nil, &parser.MissingColumnsError{
			SheetName: sheetName,
			Missing:   missing,
			HeaderRow: headerRow,
		}
	}

	agg := parser.NewAggregator(sig, cols)
	for i := headerRow; i < len(rows); i++ {
		agg.ConsumeRow(rows[i])
	}
	if n := agg.SkippedRows(); n > 0 {
		opts.logger().Warnw("skipped rows", "sheet", sheetName, "rows", n)
	}

	slides := agg.Slides()
	toc := parser.BuildToc(slides)

	audioTotal := 0
	for _, s := range slides {
		audioTotal += s.AudioTotal
	}

	sheet := &models.SheetObject{
		SheetName: sheetName,
		Base:      sig.Base,
		Level:     sig.Level,
		Unit:      sig.Unit,
		LessonNum: sig.Lesson,
		Toc:       toc,
		Slides:    slides,
		Totals: models.SheetTotals{
			Slides:     len(slides),
			AudioItems: audioTotal,
		},
	}

	if code, ok := opts.Codes.Lookup(sig.Base); ok {
		sheet.Xcode = code
	}

	return sheet, nil
}
