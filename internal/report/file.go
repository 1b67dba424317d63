package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/nao1215/mailsleuth/internal/model"
)

// fileTimeLayout is the timestamp format used in report file names.
const fileTimeLayout = "20060102_150405"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._+-]`)

// FileName returns report_<username>_<YYYYmmdd_HHMMSS>.json. Characters
// that are not safe in file names are replaced with underscores.
func FileName(username string, t time.Time) string {
	return fmt.Sprintf("report_%s_%s.json", unsafeFileChars.ReplaceAllString(username, "_"), t.Format(fileTimeLayout))
}

// SaveJSON writes the pretty-printed report into dir and returns the file
// path. The directory is created when missing.
func SaveJSON(dir string, report *model.InvestigationReport) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(report); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(dir, FileName(report.Identity.LocalPart, report.Timestamp))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
