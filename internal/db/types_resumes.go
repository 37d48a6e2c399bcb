package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/types"
)

// ErrResumeNotFound is returned when updating or deleting a resume that does not exist
var ErrResumeNotFound = errors.New("resume not found")

// Resume is a stored, parsed resume
type Resume struct {
	ID                   uuid.UUID          `json:"id"`
	Filename             string             `json:"filename"`
	ContentHash          string             `json:"content_hash"`
	FullName             string             `json:"full_name"`
	Email                string             `json:"email"`
	TotalExperienceYears float64            `json:"total_experience_years"`
	TotalExperience      string             `json:"total_experience"`
	Registration         types.Registration `json:"registration"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// ResumeCreateInput contains the fields for saving a new resume
type ResumeCreateInput struct {
	Filename     string
	ContentHash  string
	Registration *types.Registration
}

// ListResumesOptions contains pagination for listing resumes
type ListResumesOptions struct {
	Limit  int // Pagination limit, default 50, max 100
	Offset int // Pagination offset
}

// normalize clamps pagination to sane bounds
func (o ListResumesOptions) normalize() ListResumesOptions {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
