package constants

import "strings"

// FileFormat is the canonical format tag carried by a source document.
type FileFormat string

const (
	PDF         FileFormat = "PDF"
	IMAGE       FileFormat = "IMAGE"
	CSV         FileFormat = "CSV"
	SPREADSHEET FileFormat = "SPREADSHEET"
)

// FileFormats holds the allowed format tags for processing jobs.
var FileFormats = []FileFormat{PDF, IMAGE, CSV, SPREADSHEET}

// AllowedExtensions holds the default allowed file extensions for ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tiff": {},
	"bmp":  {},
	"csv":  {},
	"xlsx": {},
	"xls":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension (with or without dot) to its format
// tag. Returns "" for unsupported extensions.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "png", "jpg", "jpeg", "tiff", "bmp":
		return IMAGE
	case "csv":
		return CSV
	case "xlsx", "xls":
		return SPREADSHEET
	default:
		return ""
	}
}
