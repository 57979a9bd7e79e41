package tableio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FileType is the declared format of an uploaded file.
type FileType string

const (
	TypeCSV  FileType = "csv"
	TypeXLSX FileType = "xlsx"
)

// ErrUnsupportedType is returned for anything other than csv or xlsx.
var ErrUnsupportedType = errors.New("unsupported file type: upload a .csv or .xlsx file")

// ParseFileType accepts "csv", "xlsx" (any case, optional leading dot).
func ParseFileType(tag string) (FileType, error) {
	t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "."))
	switch FileType(t) {
	case TypeCSV, TypeXLSX:
		return FileType(t), nil
	}
	return "", fmt.Errorf("%q: %w", tag, ErrUnsupportedType)
}

// FileTypeFromName derives the type from a file name's extension.
func FileTypeFromName(name string) (FileType, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", fmt.Errorf("%q has no extension: %w", name, ErrUnsupportedType)
	}
	return ParseFileType(ext)
}

// ContentType is the MIME type used when serving a file of this type.
func (t FileType) ContentType() string {
	if t == TypeXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}
