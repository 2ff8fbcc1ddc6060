package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, data, created_at, updated_at`

// CreateResume stores a new résumé and returns the saved record
func (db *DB) CreateResume(ctx context.Context, data types.ResumeData) (*types.Resume, error) {
	payload, err := encodeResumeData(data)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (data) VALUES ($1)
		 RETURNING `+resumeColumns,
		payload,
	)
	resume, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

// GetResume retrieves a résumé by ID, or nil if none exists
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`,
		id,
	)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// ListResumes retrieves résumés, newest first
func (db *DB) ListResumes(ctx context.Context) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume replaces the stored data of a résumé
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, data types.ResumeData) (*types.Resume, error) {
	payload, err := encodeResumeData(data)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE resumes SET data = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, payload,
	)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return resume, nil
}

// DeleteResume deletes a résumé. Cover letters that reference it are kept
// with their résumé link cleared.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeResumeData(data types.ResumeData) ([]byte, error) {
	data.Normalize()
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return payload, nil
}

func scanResume(row pgx.Row) (*types.Resume, error) {
	var (
		id      uuid.UUID
		payload []byte
		resume  types.Resume
	)
	if err := row.Scan(&id, &payload, &resume.CreatedAt, &resume.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &resume.ResumeData); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", id, err)
	}
	resume.ID = id.String()
	resume.Normalize()
	return &resume, nil
}
