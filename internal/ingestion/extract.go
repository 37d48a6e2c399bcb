package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/PuerkitoBio/goquery"
)

// SupportedExtensions lists the file extensions ExtractText understands.
var SupportedExtensions = []string{".pdf", ".docx", ".doc", ".rtf", ".odt", ".html", ".htm", ".txt", ".md"}

// IsSupported reports whether the file extension of name can be extracted.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ExtractText returns the raw text content of a resume file, dispatching on extension.
func ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		if _, err := os.Stat(path); err != nil {
			return "", &ExtractionError{Path: path, Message: "file not found", Cause: err}
		}
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", &ExtractionError{Path: path, Message: "failed to parse document", Cause: err}
		}
		return res.Body, nil
	case ".html", ".htm":
		content, err := readFile(path)
		if err != nil {
			return "", err
		}
		text, err := ExtractHTMLText(string(content))
		if err != nil {
			return "", &ExtractionError{Path: path, Message: "failed to parse HTML", Cause: err}
		}
		return text, nil
	case ".txt", ".md":
		content, err := readFile(path)
		if err != nil {
			return "", err
		}
		return string(content), nil
	default:
		return "", &ExtractionError{Path: path, Message: fmt.Sprintf("unsupported file type: %q", ext)}
	}
}

// ExtractFromReader spools an uploaded file to a temp directory and extracts its text.
// The filename is only used for its extension.
func ExtractFromReader(filename string, r io.Reader) (string, error) {
	if !IsSupported(filename) {
		return "", &ExtractionError{Path: filename, Message: fmt.Sprintf("unsupported file type: %q", filepath.Ext(filename))}
	}

	dir, err := os.MkdirTemp("", "resume-upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "upload"+strings.ToLower(filepath.Ext(filename)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return ExtractText(path)
}

// ExtractHTMLText parses an HTML resume and returns the visible body text, one block per line.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer").Remove()

	// Block elements end a line so list items and headings don't run together
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, br, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return collapseLines(doc.Text()), nil
	}
	return collapseLines(body.Text()), nil
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ExtractionError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &ExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}
	return content, nil
}

// collapseLines trims every line and drops the empty ones.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
