// Package codes loads the external lesson-code lookup table.
package codes

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/parser"
)

// Table maps a normalized sheet base slug to its external short code.
type Table map[string]string

var nonAlnumRuns = regexp.MustCompile(`[^0-9a-z]+`)

// Load reads a JSON object file mapping free-form lesson names to short
// codes. Keys are normalized through the sheet signature parser, with a
// plain slug fallback for names the parser cannot decompose. The table is
// an optional enrichment: a missing or unreadable file yields an empty
// table, never an error.
func Load(path string) Table {
	if path == "" {
		return Table{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Table{}
	}
	out := make(Table, len(raw))
	for name, code := range raw {
		out[baseKey(name)] = code
	}
	return out
}

// Lookup returns the code for a base slug.
func (t Table) Lookup(base string) (string, bool) {
	code, ok := t[base]
	return code, ok
}

func baseKey(name string) string {
	if sig, err := parser.ParseSignature(name); err == nil {
		return sig.Base
	}
	slug := nonAlnumRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(slug, "_")
}
