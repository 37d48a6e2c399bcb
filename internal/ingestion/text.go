package ingestion

import (
	"regexp"
	"strings"
)

var (
	runsOfSpace   = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	runsOfNewline = regexp.MustCompile(`\n\n\n+`)
)

// bulletGlyphs are the list markers PDF and DOCX converters tend to emit.
var bulletGlyphs = []string{"• ", "· ", "▪ ", "◦ ", "● ", "– "}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}
	result := strings.Join(cleanedLines, "\n")

	// 3. Remove excessive blank lines (max 1 empty line between blocks)
	result = runsOfNewline.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Headings keep their markers but lose indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Converter bullets become Markdown bullets
	if isBulletLine(trimmed) {
		for _, glyph := range bulletGlyphs {
			if strings.HasPrefix(trimmed, glyph) {
				trimmed = "- " + strings.TrimPrefix(trimmed, glyph)
				break
			}
		}
		marker, rest := trimmed[:2], trimmed[2:]
		return marker + runsOfSpace.ReplaceAllString(strings.TrimSpace(rest), " ")
	}

	return runsOfSpace.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return true
	}
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(line, glyph) {
			return true
		}
	}
	return false
}

// IngestFromFile extracts a resume's text, cleans it, and returns cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	raw, err := ExtractText(path)
	if err != nil {
		return "", nil, err
	}

	cleanedText := CleanText(raw)
	return cleanedText, NewMetadata(cleanedText, path), nil
}
