package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const coverLetterColumns = `id, resume_id, job_title, company_name, content, customizations, created_at, updated_at`

// CreateCoverLetter stores a new cover letter and returns the saved record
func (db *DB) CreateCoverLetter(ctx context.Context, data types.CoverLetterData) (*types.CoverLetter, error) {
	resumeID, err := ParseOptionalID(data.ResumeID)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO cover_letters (resume_id, job_title, company_name, content, customizations)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+coverLetterColumns,
		resumeID, data.JobTitle, data.CompanyName, data.Content, data.Customizations,
	)
	letter, err := scanCoverLetter(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover letter: %w", err)
	}
	return letter, nil
}

// GetCoverLetter retrieves a cover letter by ID, or nil if none exists
func (db *DB) GetCoverLetter(ctx context.Context, id uuid.UUID) (*types.CoverLetter, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+coverLetterColumns+` FROM cover_letters WHERE id = $1`,
		id,
	)
	letter, err := scanCoverLetter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}
	return letter, nil
}

// ListCoverLetters retrieves cover letters, newest first
func (db *DB) ListCoverLetters(ctx context.Context) ([]types.CoverLetter, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+coverLetterColumns+` FROM cover_letters ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	defer rows.Close()

	letters := []types.CoverLetter{}
	for rows.Next() {
		letter, err := scanCoverLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cover letter: %w", err)
		}
		letters = append(letters, *letter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	return letters, nil
}

// UpdateCoverLetter replaces the stored fields of a cover letter
func (db *DB) UpdateCoverLetter(ctx context.Context, id uuid.UUID, data types.CoverLetterData) (*types.CoverLetter, error) {
	resumeID, err := ParseOptionalID(data.ResumeID)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE cover_letters
		 SET resume_id = $2, job_title = $3, company_name = $4, content = $5,
		     customizations = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+coverLetterColumns,
		id, resumeID, data.JobTitle, data.CompanyName, data.Content, data.Customizations,
	)
	letter, err := scanCoverLetter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update cover letter: %w", err)
	}
	return letter, nil
}

// DeleteCoverLetter deletes a cover letter
func (db *DB) DeleteCoverLetter(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM cover_letters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cover letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ParseOptionalID parses an optional UUID. The empty string maps to nil.
func ParseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return &id, nil
}

func scanCoverLetter(row pgx.Row) (*types.CoverLetter, error) {
	var (
		id       uuid.UUID
		resumeID *uuid.UUID
		letter   types.CoverLetter
	)
	err := row.Scan(&id, &resumeID, &letter.JobTitle, &letter.CompanyName,
		&letter.Content, &letter.Customizations, &letter.CreatedAt, &letter.UpdatedAt)
	if err != nil {
		return nil, err
	}
	letter.ID = id.String()
	if resumeID != nil {
		letter.ResumeID = resumeID.String()
	}
	return &letter, nil
}
