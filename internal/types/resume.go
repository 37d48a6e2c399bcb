// Package types provides type definitions for structured data used throughout the resume-parser system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/experience"
)

// ExtractedResume is the raw field set returned by the extraction model.
// Field names follow the extraction prompt, not the registration form.
type ExtractedResume struct {
	FullName          string           `json:"Full_Name"`
	ContactNumber     string           `json:"Contact_Number"`
	EmailAddress      string           `json:"Email_Address"`
	Location          string           `json:"Location"`
	LinkedInProfile   string           `json:"LinkedIn_Profile"`
	GitHubProfile     string           `json:"GitHub_Profile"`
	Skills            ExtractedSkills  `json:"Skills"`
	Education         []Education      `json:"Education"`
	WorkExperience    []WorkExperience `json:"Work_Experience"`
	Projects          []Project        `json:"Projects"`
	Certifications    []string         `json:"Certifications"`
	LanguagesSpoken   []string         `json:"Languages_Spoken"`
	SuggestedCategory string           `json:"Suggested_Resume_Category"`
	RecommendedRoles  []string         `json:"Recommended_Job_Roles"`
}

// ExtractedSkills splits skills the way the extraction prompt asks for them
type ExtractedSkills struct {
	Technical    []string `json:"Technical"`
	NonTechnical []string `json:"Non-Technical"`
}

// Education is one degree entry.
// encoding/json matches keys case-insensitively, so "Degree" from the
// extraction model and "degree" from the form both decode here.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Years       string `json:"years"`
}

// WorkExperience is one job. StartDate and EndDate are kept as free text;
// experience.Normalize decides whether they are usable.
type WorkExperience struct {
	CompanyName      string   `json:"company_name"`
	JobTitle         string   `json:"job_title"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Responsibilities []string `json:"responsibilities"`
}

// Project is one portfolio project
type Project struct {
	ProjectName      string   `json:"project_name"`
	TechnologiesUsed []string `json:"technologies_used"`
	Description      string   `json:"description"`
}

// PersonalInfo holds contact details
type PersonalInfo struct {
	FullName        string `json:"full_name"`
	ContactNumber   string `json:"contact_number"`
	EmailAddress    string `json:"email_address" validate:"omitempty,email"`
	Location        string `json:"location"`
	LinkedInProfile string `json:"linkedin_profile"`
	GitHub          string `json:"github"`
}

// Skills holds skill lists in registration form casing
type Skills struct {
	Technical    []string `json:"technical"`
	NonTechnical []string `json:"non_technical"`
}

// UnmarshalJSON accepts each list as a JSON array or as a single
// comma- or newline-separated string, the way the edit form submits it
func (s *Skills) UnmarshalJSON(data []byte) error {
	var raw struct {
		Technical    json.RawMessage `json:"technical"`
		NonTechnical json.RawMessage `json:"non_technical"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if s.Technical, err = decodeList(raw.Technical); err != nil {
		return fmt.Errorf("skills.technical: %w", err)
	}
	if s.NonTechnical, err = decodeList(raw.NonTechnical); err != nil {
		return fmt.Errorf("skills.non_technical: %w", err)
	}
	return nil
}

// decodeList decodes a JSON array of strings or a separated string
func decodeList(data json.RawMessage) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return SplitList(s), nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Registration is the reviewed, editable view of a parsed resume
type Registration struct {
	PersonalInfo         PersonalInfo     `json:"personal_info"`
	Skills               Skills           `json:"skills"`
	Education            []Education      `json:"education"`
	TotalExperience      string           `json:"total_experience"`
	TotalExperienceYears float64          `json:"total_experience_years"`
	WorkExperience       []WorkExperience `json:"work_experience" validate:"max=100"`
	Projects             []Project        `json:"projects"`
	Certifications       []string         `json:"certifications"`
	Languages            []string         `json:"languages"`
	SuggestedCategory    string           `json:"suggested_category"`
	RecommendedRoles     []string         `json:"recommended_roles"`
}

// Intervals returns the job date ranges for experience computation
func (r *Registration) Intervals() []experience.RawInterval {
	return JobIntervals(r.WorkExperience)
}

// Validate validates the Registration using the validator.
func (r *Registration) Validate() error {
	return validate.Struct(r)
}

// JobIntervals maps jobs to their raw date ranges
func JobIntervals(jobs []WorkExperience) []experience.RawInterval {
	intervals := make([]experience.RawInterval, 0, len(jobs))
	for _, job := range jobs {
		intervals = append(intervals, experience.RawInterval{Start: job.StartDate, End: job.EndDate})
	}
	return intervals
}

// SplitList splits comma- or newline-separated form input into trimmed, non-empty items
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}
