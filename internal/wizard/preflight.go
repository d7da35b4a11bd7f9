package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AllowedExtensions are the file types the backend accepts.
var AllowedExtensions = []string{".docx", ".xlsx", ".png", ".jpg", ".jpeg"}

// FileInfo describes a local file that passed preflight.
type FileInfo struct {
	Path   string
	Name   string
	Size   int64
	Sheets []string
}

// Detail summarises spreadsheet contents for the slot status line.
func (f FileInfo) Detail() string {
	if len(f.Sheets) == 0 {
		return ""
	}
	return fmt.Sprintf("%d sheet(s): %s", len(f.Sheets), strings.Join(f.Sheets, ", "))
}

// AllowedFile reports whether name has an accepted extension.
func AllowedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Preflight checks a local file before it is uploaded. Workbooks are opened
// to make sure they are readable and to list their sheets.
func Preflight(path string) (FileInfo, error) {
	path = CleanDroppedPath(path)
	if path == "" {
		return FileInfo{}, invalid("file", "no file given")
	}
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, invalid("file", "cannot read %s", path)
	}
	if !st.Mode().IsRegular() {
		return FileInfo{}, invalid("file", "%s is not a regular file", path)
	}
	name := filepath.Base(path)
	if !AllowedFile(name) {
		return FileInfo{}, invalid("file", "%s: file type not allowed (use %s)", name, strings.Join(AllowedExtensions, ", "))
	}
	info := FileInfo{Path: path, Name: name, Size: st.Size()}

	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		wb, err := excelize.OpenFile(path)
		if err != nil {
			return FileInfo{}, invalid("file", "%s is not a readable workbook", name)
		}
		defer wb.Close()
		info.Sheets = wb.GetSheetList()
	}
	return info, nil
}

// CleanDroppedPath normalises a path pasted by a terminal drag-and-drop:
// surrounding quotes, file:// prefixes and backslash-escaped spaces.
func CleanDroppedPath(raw string) string {
	p := strings.TrimSpace(raw)
	if len(p) >= 2 {
		if (p[0] == '\'' && p[len(p)-1] == '\'') || (p[0] == '"' && p[len(p)-1] == '"') {
			p = p[1 : len(p)-1]
		}
	}
	p = strings.TrimPrefix(p, "file://")
	p = strings.ReplaceAll(p, `\ `, " ")
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
