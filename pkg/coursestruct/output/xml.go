package output

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

// CourseToXML serializes a course document with the XML declaration.
func CourseToXML(doc *models.CourseDocument) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// WriteCourseXML writes one course document into its per-unit folder under
// dir (xml_output_lvl{level}_u{unit}/{base}.xml) and returns the path.
func WriteCourseXML(doc *models.CourseDocument, dir, base string, level, unit int) (string, error) {
	unitDir := filepath.Join(dir, fmt.Sprintf("xml_output_lvl%d_u%d", level, unit))
	if err := os.MkdirAll(unitDir, 0755); err != nil {
		return "", err
	}
	data, err := CourseToXML(doc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(unitDir, base+".xml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
