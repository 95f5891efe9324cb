package export

import (
	"path/filepath"
	"sort"
	"strings"
)

// Format specifies the report serialization format.
type Format string

const (
	// FormatJSON produces an indented JSON array (.json).
	FormatJSON Format = "json"

	// FormatYAML produces a YAML sequence (.yaml, .yml).
	FormatYAML Format = "yaml"

	// FormatCSV produces CSV with a header row (.csv).
	FormatCSV Format = "csv"
)

// FormatInfo provides metadata about a report format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extensions are the file extensions (with dot) mapped to the format.
	Extensions []string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extensions:  []string{".json"},
		Description: "JSON array of spell error records",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extensions:  []string{".yaml", ".yml"},
		Description: "YAML sequence of spell error records",
	},
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extensions:  []string{".csv"},
		Description: "CSV with file, dcid, property and spell_errors columns",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// FormatForPath picks the format from the file extension of path.
// Unknown or missing extensions use JSON.
func FormatForPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for name, info := range FormatRegistry {
		for _, e := range info.Extensions {
			if e == ext {
				return name
			}
		}
	}
	return FormatJSON
}

// Formats returns the metadata of every supported format, sorted by name.
func Formats() []FormatInfo {
	infos := make([]FormatInfo, 0, len(FormatRegistry))
	for _, info := range FormatRegistry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
