// Package attach embeds compiled sheet objects into lesson metadata files
// by matching human-readable lesson labels.
package attach

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

var labelPattern = regexp.MustCompile(`(?i)level\s*(\d+)\s*unit\s*(\d+)\s*lesson\s*(\d+)`)

// Key identifies one lesson in a workbook index.
type Key struct {
	Level  int
	Unit   int
	Lesson int
}

// ParseLabel extracts the lesson key from a human label like
// "Level 3 Unit 5 Lesson 2".
func ParseLabel(label string) (Key, bool) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return Key{}, false
	}
	level, _ := strconv.Atoi(m[1])
	unit, _ := strconv.Atoi(m[2])
	lesson, _ := strconv.Atoi(m[3])
	return Key{Level: level, Unit: unit, Lesson: lesson}, true
}

// Options configures an attach run.
type Options struct {
	// Pattern is the workbook filename glob within the source directory.
	// Empty means "*.json".
	Pattern string
	// Level restricts matching to one curriculum level; 0 means all.
	Level int
	// DryRun reports what would change without writing.
	DryRun bool
}

// Result summarizes one attach run.
type Result struct {
	// Updated counts metadata entries whose sheet object changed.
	Updated int
	// Missing lists labels with no matching compiled sheet.
	Missing []string
	// SkippedOutOfScope counts entries outside the requested level.
	SkippedOutOfScope int
	// BackupPath is the pre-write backup location (empty on dry runs).
	BackupPath string
}

// LoadIndex reads every workbook JSON matching pattern under dir and
// indexes the full sheet objects by lesson key.
func LoadIndex(dir, pattern string) (map[Key]models.SheetObject, error) {
	if pattern == "" {
		pattern = "*.json"
	}
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no workbook JSONs found in %s", dir)
	}
	sort.Strings(files)

	index := make(map[Key]models.SheetObject)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var wb models.Workbook
		if err := json.Unmarshal(data, &wb); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for _, s := range wb.Sheets {
			index[Key{Level: s.Level, Unit: s.Unit, Lesson: s.LessonNum}] = s
		}
	}
	return index, nil
}

// Run embeds matching sheet objects into the metadata array at metaPath.
// Metadata entries keep all their other fields; only "sheet" is replaced.
func Run(metaPath, fromDir string, opts Options) (*Result, error) {
	index, err := LoadIndex(fromDir, opts.Pattern)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta []map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("expected %s to be a JSON array of objects: %w", metaPath, err)
	}

	res := &Result{}
	for _, entry := range meta {
		label := stringField(entry, "key")
		if label == "" {
			label = stringField(entry, "label")
		}
		if label == "" {
			continue
		}
		key, ok := ParseLabel(label)
		if !ok {
			continue
		}
		if opts.Level != 0 && key.Level != opts.Level {
			res.SkippedOutOfScope++
			continue
		}
		sheet, ok := index[key]
		if !ok {
			res.Missing = append(res.Missing, fmt.Sprintf("Level %d Unit %d Lesson %d", key.Level, key.Unit, key.Lesson))
			continue
		}
		embedded, err := toGeneric(sheet)
		if err != nil {
			return nil, err
		}
		if !reflect.DeepEqual(entry["sheet"], embedded) {
			entry["sheet"] = embedded
			res.Updated++
		}
	}

	if opts.DryRun {
		return res, nil
	}

	backup, err := backupFile(metaPath)
	if err != nil {
		return nil, err
	}
	res.BackupPath = backup

	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(metaPath, out, 0644); err != nil {
		return nil, err
	}
	return res, nil
}

// toGeneric round-trips a sheet object through JSON so the embedded form
// compares cleanly against what a previous run wrote.
func toGeneric(sheet models.SheetObject) (map[string]any, error) {
	data, err := json.Marshal(sheet)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stringField(entry map[string]any, key string) string {
	if v, ok := entry[key].(string); ok {
		return v
	}
	return ""
}

func backupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", err
	}
	return backup, nil
}
