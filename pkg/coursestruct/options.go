// Package coursestruct compiles lesson spreadsheets into normalized sheet
// objects consumed by the course-structure builder.
package coursestruct

import (
	"go.uber.org/zap"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/codes"
)

// Options configures workbook compilation.
type Options struct {
	// Codes is the external lesson-code table; sheets whose base slug
	// matches get an xcode attached. May be nil.
	Codes codes.Table
	// Logger receives row- and sheet-level diagnostics. May be nil.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns default compilation options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}
