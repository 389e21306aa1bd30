package structure

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

// SheetRecord pairs a sheet object with the external code that should drive
// its identifiers.
type SheetRecord struct {
	Sheet models.SheetObject
	Xcode string
}

// envelope captures the wrapper fields of the accepted input shapes.
type envelope struct {
	Sheet  *models.SheetObject  `json:"sheet"`
	Sheets []models.SheetObject `json:"sheets"`
	Code   string               `json:"code"`
	Xcode  string               `json:"xcode"`
}

// ExtractSheets normalizes stage-2 input into a flat record list. Accepted
// shapes:
//
//   - a lesson list: [{..., "sheet": {...}, "code": "X"}, ...]
//   - a workbook: {"sheets": [{...}, ...]}
//   - a single record: {"sheet": {...}, "code": "X"}
//   - a raw sheet object
//
// List items that are not objects are skipped.
func ExtractSheets(data []byte) ([]SheetRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty input")
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		var records []SheetRecord
		for _, item := range items {
			recs, err := extractRecord(item)
			if err != nil {
				continue
			}
			records = append(records, recs...)
		}
		return records, nil
	case '{':
		return extractRecord(trimmed)
	default:
		return nil, errors.New("unsupported input JSON structure")
	}
}

func extractRecord(raw []byte) ([]SheetRecord, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	switch {
	case env.Sheet != nil:
		return []SheetRecord{{Sheet: *env.Sheet, Xcode: recordCode(env, env.Sheet.Xcode)}}, nil
	case len(env.Sheets) > 0:
		records := make([]SheetRecord, 0, len(env.Sheets))
		for _, s := range env.Sheets {
			records = append(records, SheetRecord{Sheet: s, Xcode: recordCode(env, s.Xcode)})
		}
		return records, nil
	default:
		var sheet models.SheetObject
		if err := json.Unmarshal(raw, &sheet); err != nil {
			return nil, err
		}
		return []SheetRecord{{Sheet: sheet, Xcode: recordCode(env, sheet.Xcode)}}, nil
	}
}

func recordCode(env envelope, sheetCode string) string {
	if env.Code != "" {
		return env.Code
	}
	if env.Xcode != "" {
		return env.Xcode
	}
	return sheetCode
}
