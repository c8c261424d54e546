// Package fs writes extraction reports to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/storescope"
)

// ReportName converts a store URL to a file name stem.
// Example: https://www.Example-Shop.com:8443/ → www.example-shop.com_8443
func ReportName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", storescope.Errorf(storescope.EINVALID, "invalid website URL: %v", err)
	}
	if u.Host == "" {
		return "", storescope.Errorf(storescope.EINVALID, "website URL has no host")
	}
	return strings.ReplaceAll(strings.ToLower(u.Host), ":", "_"), nil
}

// FormatReport renders insights as markdown with YAML frontmatter.
func FormatReport(insights *storescope.BrandInsights) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(insights.WebsiteURL)
	b.WriteString("\nbrand: ")
	b.WriteString(insights.BrandName)
	b.WriteString("\nextracted: ")
	b.WriteString(insights.ExtractedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(storescope.FormatInsights(insights))
	return b.String()
}

// Ensure ReportWriter implements storescope.ReportWriter at compile time.
var _ storescope.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes insights as <host>.json, and optionally a markdown
// digest as <host>.md, into a directory. Files are replaced atomically.
type ReportWriter struct {
	baseDir string

	// Markdown also writes the markdown digest.
	Markdown bool
}

// NewReportWriter creates a ReportWriter that writes to baseDir.
func NewReportWriter(baseDir string) *ReportWriter {
	return &ReportWriter{baseDir: baseDir}
}

// WriteReport writes insights to disk and returns the JSON file path.
func (w *ReportWriter) WriteReport(ctx context.Context, insights *storescope.BrandInsights) (string, error) {
	if insights == nil {
		return "", storescope.Errorf(storescope.EINVALID, "insights required")
	}

	name, err := ReportName(insights.WebsiteURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return "", err
	}

	jsonPath := filepath.Join(w.baseDir, name+".json")
	if err := writeAtomic(jsonPath, append(data, '\n')); err != nil {
		return "", err
	}

	if w.Markdown {
		mdPath := filepath.Join(w.baseDir, name+".md")
		if err := writeAtomic(mdPath, []byte(FormatReport(insights))); err != nil {
			return "", err
		}
	}

	return jsonPath, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
