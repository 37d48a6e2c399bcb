// Package parsing turns resume text into a reviewed Registration using LLM extraction.
package parsing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
	schemafiles "github.com/jonathan/resume-parser/schemas"
)

// Result is everything produced from one resume
type Result struct {
	Registration *types.Registration    `json:"registration"`
	Experience   experience.Summary     `json:"experience"`
	Extracted    *types.ExtractedResume `json:"-"`
	Metadata     *ingestion.Metadata    `json:"metadata,omitempty"`
}

// ParseResume extracts a Registration from cleaned resume text.
// now anchors "Present" end dates when computing total experience.
func ParseResume(ctx context.Context, client llm.Client, text string, now time.Time) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	prompt := llm.BuildExtractionPrompt(llm.ResumeSchema(), sanitizeResumeText(text))

	// Standard tier: the schema is wide but the task is extraction, not reasoning
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: ModelFailureMessage,
			Cause:   err,
		}
	}

	extracted, err := parseJSONResponse(responseText)
	if err != nil {
		return nil, err
	}

	reg, summary := BuildRegistration(extracted, now)
	return &Result{
		Registration: reg,
		Experience:   summary,
		Extracted:    extracted,
	}, nil
}

// ParseResumeFile ingests a resume file and parses it
func ParseResumeFile(ctx context.Context, client llm.Client, path string, now time.Time) (*Result, error) {
	text, metadata, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, err
	}

	result, err := ParseResume(ctx, client, text, now)
	if err != nil {
		return nil, err
	}
	result.Metadata = metadata
	return result, nil
}

// parseJSONResponse validates the model output against the resume schema and decodes it
func parseJSONResponse(jsonText string) (*types.ExtractedResume, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	if err := schemas.Validate(schemafiles.ExtractedResume, []byte(jsonText)); err != nil {
		return nil, &ParseError{
			Message: "model output does not match the resume schema",
			Cause:   err,
		}
	}

	var extracted types.ExtractedResume
	if err := json.Unmarshal([]byte(jsonText), &extracted); err != nil {
		return nil, &ParseError{
			Message: "failed to unmarshal resume JSON",
			Cause:   err,
		}
	}
	return &extracted, nil
}

// BuildRegistration maps extracted fields onto the registration form and computes total experience
func BuildRegistration(ex *types.ExtractedResume, now time.Time) (*types.Registration, experience.Summary) {
	reg := &types.Registration{
		PersonalInfo: types.PersonalInfo{
			FullName:        ex.FullName,
			ContactNumber:   ex.ContactNumber,
			EmailAddress:    ex.EmailAddress,
			Location:        ex.Location,
			LinkedInProfile: ex.LinkedInProfile,
			GitHub:          ex.GitHubProfile,
		},
		Skills: types.Skills{
			Technical:    ex.Skills.Technical,
			NonTechnical: ex.Skills.NonTechnical,
		},
		Education:         ex.Education,
		WorkExperience:    ex.WorkExperience,
		Projects:          ex.Projects,
		Certifications:    ex.Certifications,
		Languages:         ex.LanguagesSpoken,
		SuggestedCategory: ex.SuggestedCategory,
		RecommendedRoles:  ex.RecommendedRoles,
	}

	summary := NormalizeRegistration(reg, now)
	return reg, summary
}

// NormalizeRegistration tidies an extracted or edited registration in place
// and recomputes its total experience
func NormalizeRegistration(reg *types.Registration, now time.Time) experience.Summary {
	p := &reg.PersonalInfo
	p.FullName = strings.TrimSpace(p.FullName)
	p.ContactNumber = strings.TrimSpace(p.ContactNumber)
	p.EmailAddress = strings.TrimSpace(p.EmailAddress)
	p.Location = strings.TrimSpace(p.Location)
	p.LinkedInProfile = strings.TrimSpace(p.LinkedInProfile)
	p.GitHub = strings.TrimSpace(p.GitHub)

	reg.Skills.Technical = NormalizeSkills(reg.Skills.Technical)
	reg.Skills.NonTechnical = cleanList(reg.Skills.NonTechnical)

	education := make([]types.Education, 0, len(reg.Education))
	for _, e := range reg.Education {
		e.Degree = strings.TrimSpace(e.Degree)
		e.Institution = strings.TrimSpace(e.Institution)
		e.Years = strings.TrimSpace(e.Years)
		if e == (types.Education{}) {
			continue
		}
		education = append(education, e)
	}
	reg.Education = education

	jobs := make([]types.WorkExperience, 0, len(reg.WorkExperience))
	for _, job := range reg.WorkExperience {
		job.CompanyName = strings.TrimSpace(job.CompanyName)
		job.JobTitle = strings.TrimSpace(job.JobTitle)
		job.StartDate = strings.TrimSpace(job.StartDate)
		job.EndDate = strings.TrimSpace(job.EndDate)
		job.Responsibilities = cleanList(job.Responsibilities)
		if job.CompanyName == "" && job.JobTitle == "" && job.StartDate == "" && job.EndDate == "" {
			continue
		}
		jobs = append(jobs, job)
	}
	reg.WorkExperience = jobs

	projects := make([]types.Project, 0, len(reg.Projects))
	for _, proj := range reg.Projects {
		proj.ProjectName = strings.TrimSpace(proj.ProjectName)
		proj.Description = strings.TrimSpace(proj.Description)
		proj.TechnologiesUsed = NormalizeSkills(proj.TechnologiesUsed)
		if proj.ProjectName == "" && proj.Description == "" {
			continue
		}
		projects = append(projects, proj)
	}
	reg.Projects = projects

	reg.Certifications = cleanList(reg.Certifications)
	reg.Languages = cleanList(reg.Languages)
	reg.SuggestedCategory = strings.TrimSpace(reg.SuggestedCategory)
	reg.RecommendedRoles = cleanList(reg.RecommendedRoles)

	return RecomputeExperience(reg, now)
}

// RecomputeExperience derives total_experience from the registration's work history
func RecomputeExperience(reg *types.Registration, now time.Time) experience.Summary {
	summary := experience.Summarize(reg.Intervals(), now)
	reg.TotalExperience = summary.Display
	reg.TotalExperienceYears = summary.Years
	return summary
}

// ValidateRegistration checks a registration against the registration schema
// and its field constraints
func ValidateRegistration(reg *types.Registration) error {
	if err := reg.Validate(); err != nil {
		return &ValidationError{Message: "invalid registration", Cause: err}
	}

	data, err := json.Marshal(reg)
	if err != nil {
		return &ValidationError{Message: "failed to marshal registration", Cause: err}
	}
	if err := schemas.Validate(schemafiles.Registration, data); err != nil {
		return &ValidationError{Message: "registration does not match schema", Cause: err}
	}
	return nil
}

// Parser binds ParseResume to one LLM client
type Parser struct {
	Client llm.Client
}

// NewParser creates a Parser backed by client
func NewParser(client llm.Client) *Parser {
	return &Parser{Client: client}
}

// Parse extracts a Registration from cleaned resume text
func (p *Parser) Parse(ctx context.Context, text string, now time.Time) (*Result, error) {
	return ParseResume(ctx, p.Client, text, now)
}
