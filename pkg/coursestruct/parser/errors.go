package parser

import "fmt"

// SignatureError indicates a sheet title that no fallback strategy could
// decompose into level/unit/lesson. It is fatal for the whole workbook: a
// naming convention break on one tab likely affects its siblings.
type SignatureError struct {
	Title string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("cannot parse level/unit/lesson from sheet name: %q", e.Title)
}

// MissingColumnsError indicates that header resolution could not locate the
// required fields on a sheet.
type MissingColumnsError struct {
	SheetName string
	Missing   []string
	HeaderRow int
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet %q missing columns: %v (header row=%d)", e.SheetName, e.Missing, e.HeaderRow)
}
