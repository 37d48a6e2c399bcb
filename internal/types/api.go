package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-parser/internal/experience"
)

// asOfLayouts are the accepted forms of an explicit as-of date
var asOfLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("asof", func(fl validator.FieldLevel) bool {
		_, err := ParseAsOf(fl.Field().String(), time.Time{})
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register asof validation: %v", err))
	}
	return v
}

// ExperienceRequest asks for total experience over a set of job date ranges
type ExperienceRequest struct {
	Intervals []experience.RawInterval `json:"intervals" validate:"required,max=500"`
	AsOf      string                   `json:"as_of,omitempty" validate:"omitempty,asof"`
}

// Validate validates the ExperienceRequest using the validator.
func (r *ExperienceRequest) Validate() error {
	return validate.Struct(r)
}

// ResumeUpdateRequest replaces the stored registration for a resume
type ResumeUpdateRequest struct {
	Registration Registration `json:"registration"`
	AsOf         string       `json:"as_of,omitempty" validate:"omitempty,asof"`
}

// Validate validates the ResumeUpdateRequest using the validator.
func (r *ResumeUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// ParseAsOf parses an as-of date. An empty string yields fallback.
func ParseAsOf(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	for _, layout := range asOfLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid as-of date %q: expected YYYY-MM, YYYY-MM-DD or RFC3339", s)
}
