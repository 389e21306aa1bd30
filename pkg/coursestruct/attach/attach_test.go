package attach

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label string
		key   Key
		ok    bool
	}{
		{"Level 3 Unit 5 Lesson 2", Key{3, 5, 2}, true},
		{"level3unit5lesson2", Key{3, 5, 2}, true},
		{"Intro - Level 4 Unit 12 Lesson 1 (rev)", Key{4, 12, 1}, true},
		{"Unit 5 Lesson 2", Key{}, false},
		{"", Key{}, false},
	}
	for _, tt := range tests {
		key, ok := ParseLabel(tt.label)
		if ok != tt.ok || key != tt.key {
			t.Errorf("ParseLabel(%q) = (%+v, %v), want (%+v, %v)", tt.label, key, ok, tt.key, tt.ok)
		}
	}
}

func writeWorkbookJSON(t *testing.T, dir, name string, sheets []models.SheetObject) {
	t.Helper()
	wb := models.Workbook{Workbook: name, Sheets: sheets}
	data, err := json.Marshal(wb)
	if err != nil {
		t.Fatalf("marshal workbook: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
}

func TestRun(t *testing.T) {
	fromDir := t.TempDir()
	writeWorkbookJSON(t, fromDir, "unit5", []models.SheetObject{
		{SheetName: "Level 3 Unit 5 Lesson 2", Base: "level_3_unit_5_lesson_2", Level: 3, Unit: 5, LessonNum: 2},
	})

	metaPath := filepath.Join(t.TempDir(), "metadata.json")
	meta := `[
		{"key": "Level 3 Unit 5 Lesson 2", "code": "X7KQ2"},
		{"key": "Level 3 Unit 5 Lesson 9", "code": "X7KQ9"},
		{"key": "Level 4 Unit 1 Lesson 1", "code": "Y0001"},
		{"note": "no label here"}
	]`
	if err := os.WriteFile(metaPath, []byte(meta), 0644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	res, err := Run(metaPath, fromDir, Options{Level: 3})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Updated != 1 {
		t.Errorf("updated = %d, want 1", res.Updated)
	}
	if len(res.Missing) != 1 || !strings.Contains(res.Missing[0], "Lesson 9") {
		t.Errorf("missing = %v, want the unmatched lesson", res.Missing)
	}
	if res.SkippedOutOfScope != 1 {
		t.Errorf("skipped out of scope = %d, want 1", res.SkippedOutOfScope)
	}
	if res.BackupPath == "" {
		t.Error("expected a backup path")
	}
	if _, err := os.Stat(res.BackupPath); err != nil {
		t.Errorf("backup file missing: %v", err)
	}

	// The written metadata carries the embedded sheet.
	data, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	var updated []map[string]any
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}
	sheet, ok := updated[0]["sheet"].(map[string]any)
	if !ok {
		t.Fatalf("entry 0 has no embedded sheet: %v", updated[0])
	}
	if sheet["base"] != "level_3_unit_5_lesson_2" {
		t.Errorf("embedded base = %v", sheet["base"])
	}
	if updated[0]["code"] != "X7KQ2" {
		t.Error("other entry fields must survive the rewrite")
	}

	// A second run embeds nothing new.
	res2, err := Run(metaPath, fromDir, Options{Level: 3})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if res2.Updated != 0 {
		t.Errorf("second run updated = %d, want 0", res2.Updated)
	}
}

func TestRunDryRun(t *testing.T) {
	fromDir := t.TempDir()
	writeWorkbookJSON(t, fromDir, "unit5", []models.SheetObject{
		{SheetName: "Level 3 Unit 5 Lesson 2", Level: 3, Unit: 5, LessonNum: 2},
	})

	metaPath := filepath.Join(t.TempDir(), "metadata.json")
	original := `[{"key": "Level 3 Unit 5 Lesson 2"}]`
	if err := os.WriteFile(metaPath, []byte(original), 0644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	res, err := Run(metaPath, fromDir, Options{DryRun: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Updated != 1 {
		t.Errorf("updated = %d, want 1", res.Updated)
	}
	if res.BackupPath != "" {
		t.Error("dry run must not create a backup")
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if string(data) != original {
		t.Error("dry run must not rewrite the metadata file")
	}
}

func TestRunNoWorkbooks(t *testing.T) {
	metaPath := filepath.Join(t.TempDir(), "metadata.json")
	if err := os.WriteFile(metaPath, []byte(`[]`), 0644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	if _, err := Run(metaPath, t.TempDir(), Options{}); err == nil {
		t.Error("expected error when no workbook JSONs exist")
	}
}
