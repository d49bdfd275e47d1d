package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/corpus-projector/internal/domain"
)

// ErrUnsupportedFormat is returned for report formats with no formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// GenerateReport writes the projection to dir in the given format and returns
// the written file names. "all" writes the console report and the detailed ledger.
func GenerateReport(results *domain.FullProjection, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, results, dir, extensionFor(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	name, err := WriteFormatted(f, results, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}
