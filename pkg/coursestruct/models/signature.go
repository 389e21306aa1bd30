// Package models defines data structures for the lesson spreadsheet pipeline.
package models

import "fmt"

// SheetSignature identifies a lesson sheet by its level/unit/lesson triple,
// parsed from the sheet title.
type SheetSignature struct {
	// Base is the normalized slug used as the stable cross-reference key
	// for all downstream lookups (e.g. "level_3_unit_5_lesson_2").
	Base string `json:"base"`
	// Level is the curriculum level number.
	Level int `json:"level"`
	// Unit is the unit number within the level.
	Unit int `json:"unit"`
	// Lesson is the lesson number within the unit.
	Lesson int `json:"lesson"`
}

// NewSheetSignature builds a signature with the canonical base slug for the
// given triple. Derivation is deterministic: the same triple always yields
// the same base.
func NewSheetSignature(level, unit, lesson int) SheetSignature {
	return SheetSignature{
		Base:   fmt.Sprintf("level_%d_unit_%d_lesson_%d", level, unit, lesson),
		Level:  level,
		Unit:   unit,
		Lesson: lesson,
	}
}
