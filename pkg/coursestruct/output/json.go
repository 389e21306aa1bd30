// Package output serializes pipeline results to their on-disk forms.
package output

import (
	"encoding/json"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

// ToJSON serializes a compiled workbook.
func ToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(wb, "", "  ")
	}
	return json.Marshal(wb)
}

// SheetToJSON serializes a single sheet object.
func SheetToJSON(sheet *models.SheetObject, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(sheet, "", "  ")
	}
	return json.Marshal(sheet)
}
