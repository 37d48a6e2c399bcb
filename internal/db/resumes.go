package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-parser/internal/types"
)

const resumeColumns = `id, filename, content_hash, full_name, email,
	total_experience_years, total_experience, data, created_at, updated_at`

// SaveResume inserts a parsed resume and returns the stored row
func (db *DB) SaveResume(ctx context.Context, input *ResumeCreateInput) (*Resume, error) {
	if input == nil || input.Registration == nil {
		return nil, fmt.Errorf("failed to save resume: registration is required")
	}

	data, err := json.Marshal(input.Registration)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registration: %w", err)
	}

	reg := input.Registration
	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (filename, content_hash, full_name, email,
		                      total_experience_years, total_experience, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+resumeColumns,
		input.Filename, input.ContentHash, reg.PersonalInfo.FullName, reg.PersonalInfo.EmailAddress,
		reg.TotalExperienceYears, reg.TotalExperience, data,
	)

	resume, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return resume, nil
}

// GetResume retrieves a resume by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)

	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// FindResumeByHash returns the most recent resume with the given content hash,
// or nil, nil when none exists
func (db *DB) FindResumeByHash(ctx context.Context, contentHash string) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE content_hash = $1
		 ORDER BY created_at DESC
		 LIMIT 1`, contentHash)

	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find resume by hash: %w", err)
	}
	return resume, nil
}

// ListResumes lists resumes newest first, returning the page and the total count
func (db *DB) ListResumes(ctx context.Context, opts ListResumesOptions) ([]Resume, int, error) {
	opts = opts.normalize()

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count resumes: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, total, nil
}

// UpdateResume replaces the stored registration and its denormalized columns
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, reg *types.Registration) (*Resume, error) {
	data, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registration: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET full_name = $2, email = $3, total_experience_years = $4,
		     total_experience = $5, data = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, reg.PersonalInfo.FullName, reg.PersonalInfo.EmailAddress,
		reg.TotalExperienceYears, reg.TotalExperience, data,
	)

	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return resume, nil
}

// DeleteResume deletes a resume by ID
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// scanResume reads one resumes row from a QueryRow result or a Rows cursor
func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var data []byte
	err := row.Scan(
		&r.ID, &r.Filename, &r.ContentHash, &r.FullName, &r.Email,
		&r.TotalExperienceYears, &r.TotalExperience, &data, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &r.Registration); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registration: %w", err)
	}
	return &r, nil
}
