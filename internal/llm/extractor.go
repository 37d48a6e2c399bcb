package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/prompts"
)

// ExtractionSchema defines what to pull out of unstructured text
type ExtractionSchema struct {
	Name        string        // Schema name, e.g. "Resume"
	Description string        // Task description placed at the top of the prompt
	Fields      []SchemaField // Expected output fields, in prompt order
	Rules       []string      // Extra instructions appended after the schema
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Shape hint rendered verbatim, e.g. "\"\"" or "[]"
	Description string // Description for the LLM
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Input text:\n---\n")
	sb.WriteString(inputText)
	sb.WriteString("\n---\n\n")

	sb.WriteString("Desired JSON Schema to Populate:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `""`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	if len(schema.Rules) > 0 {
		sb.WriteString("\nIMPORTANT:\n")
		for _, rule := range schema.Rules {
			sb.WriteString("- ")
			sb.WriteString(rule)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// ResumeSchema returns the extraction schema for a candidate resume.
func ResumeSchema() ExtractionSchema {
	description := prompts.Format(prompts.MustGet("parsing.json", "extract-resume-description"), map[string]string{
		"Document": "resume",
	})
	return ExtractionSchema{
		Name:        "Resume",
		Description: description,
		Fields: []SchemaField{
			{Name: "Full_Name"},
			{Name: "Contact_Number"},
			{Name: "Email_Address"},
			{Name: "Location"},
			{Name: "LinkedIn_Profile"},
			{Name: "GitHub_Profile"},
			{Name: "Skills", Type: `{"Technical": [], "Non-Technical": []}`},
			{Name: "Education", Type: `[{"Degree": "", "Institution": "", "Years": ""}]`},
			{
				Name:        "Work_Experience",
				Type:        `[{"Company_Name": "", "Job_Title": "", "start_date": "MM/YYYY", "end_date": "MM/YYYY or Present", "Responsibilities": []}]`,
				Description: "one entry per position, dates as written on the resume",
			},
			{Name: "Projects", Type: `[{"Project_Name": "", "Technologies_Used": [], "Description": ""}]`},
			{Name: "Certifications", Type: "[]"},
			{Name: "Languages_Spoken", Type: "[]", Description: "spoken languages, not programming languages"},
			{Name: "Suggested_Resume_Category", Description: "a role category suggested by the skills and experience"},
			{Name: "Recommended_Job_Roles", Type: "[]", Description: "a few job roles that fit the candidate"},
		},
		Rules: strings.Split(prompts.MustGet("parsing.json", "extract-resume-rules"), "\n"),
	}
}
