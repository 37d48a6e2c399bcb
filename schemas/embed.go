// Package schemas holds the JSON Schema documents for resume artifacts.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names
const (
	ExtractedResume = "extracted_resume.schema.json"
	WorkHistory     = "work_history.schema.json"
	Registration    = "registration.schema.json"
)
