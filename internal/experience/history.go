package experience

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-parser/internal/schemas"
	schemafiles "github.com/jonathan/resume-parser/schemas"
)

// wrappedHistory accepts both the registration and the extraction casing
type wrappedHistory struct {
	WorkExperience  []RawInterval `json:"work_experience"`
	ExtractionShape []RawInterval `json:"Work_Experience"`
}

// LoadWorkHistory loads job date ranges from a JSON file
func LoadWorkHistory(path string) ([]RawInterval, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return DecodeWorkHistory(content)
}

// DecodeWorkHistory decodes either a bare array of jobs or an object
// carrying a work_experience (or Work_Experience) array
func DecodeWorkHistory(content []byte) ([]RawInterval, error) {
	if err := schemas.Validate(schemafiles.WorkHistory, content); err != nil {
		return nil, &LoadError{
			Message: "schema validation failed",
			Cause:   err,
		}
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []RawInterval
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
		}
		return records, nil
	}

	var wrapped wrappedHistory
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}
	if wrapped.WorkExperience != nil {
		return wrapped.WorkExperience, nil
	}
	return wrapped.ExtractionShape, nil
}
