package parser

import (
	"errors"
	"testing"
)

func TestParseSignature(t *testing.T) {
	tests := []struct {
		title  string
		level  int
		unit   int
		lesson int
		base   string
	}{
		{"Level 3 Unit 7 Lesson 4", 3, 7, 4, "level_3_unit_7_lesson_4"},
		{"LVL3_UNT5_LSN2", 3, 5, 2, "level_3_unit_5_lesson_2"},
		{"L3 U5 Ls2", 3, 5, 2, "level_3_unit_5_lesson_2"},
		{"level-4 unit-12 lesson-1 (final)", 4, 12, 1, "level_4_unit_12_lesson_1"},
		// The structured pattern wins over the numeric fallback: a stray
		// leading number must not shift the triple.
		{"v2 Level 3 Unit 5 Lesson 9", 3, 5, 9, "level_3_unit_5_lesson_9"},
		// Numeric-run fallback: first three numbers in order.
		{"3.7.4 review copy", 3, 7, 4, "level_3_unit_7_lesson_4"},
		{"Level//3--Unit//5--Les//9", 3, 5, 9, "level_3_unit_5_lesson_9"},
	}

	for _, tt := range tests {
		sig, err := ParseSignature(tt.title)
		if err != nil {
			t.Errorf("ParseSignature(%q) failed: %v", tt.title, err)
			continue
		}
		if sig.Level != tt.level || sig.Unit != tt.unit || sig.Lesson != tt.lesson {
			t.Errorf("ParseSignature(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.title, sig.Level, sig.Unit, sig.Lesson, tt.level, tt.unit, tt.lesson)
		}
		if sig.Base != tt.base {
			t.Errorf("ParseSignature(%q) base = %q, want %q", tt.title, sig.Base, tt.base)
		}
	}
}

func TestParseSignatureDeterministic(t *testing.T) {
	title := "Level 3 Unit 7 Lesson 4"
	first, err := ParseSignature(title)
	if err != nil {
		t.Fatalf("ParseSignature failed: %v", err)
	}
	second, err := ParseSignature(title)
	if err != nil {
		t.Fatalf("ParseSignature failed on second run: %v", err)
	}
	if first != second {
		t.Errorf("ParseSignature not deterministic: %+v vs %+v", first, second)
	}
}

func TestParseSignatureUnparseable(t *testing.T) {
	_, err := ParseSignature("Notes and Ideas")
	if err == nil {
		t.Fatal("expected error for unparseable title")
	}
	var sigErr *SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected *SignatureError, got %T", err)
	}
	if sigErr.Title != "Notes and Ideas" {
		t.Errorf("error title = %q, want %q", sigErr.Title, "Notes and Ideas")
	}
}
