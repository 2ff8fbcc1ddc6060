package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonathan/resume-builder/internal/types"
)

// CoverLetterService groups the /cover-letter endpoints.
type CoverLetterService struct {
	client *Client
}

// CoverLetters returns the cover-letter endpoints.
func (c *Client) CoverLetters() *CoverLetterService {
	return &CoverLetterService{client: c}
}

// Create stores a new cover letter.
func (s *CoverLetterService) Create(ctx context.Context, data types.CoverLetterData) (*types.CoverLetter, error) {
	var out types.CoverLetter
	if err := s.client.Do(ctx, http.MethodPost, PathCoverLetters, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every stored cover letter.
func (s *CoverLetterService) List(ctx context.Context) ([]types.CoverLetter, error) {
	out := []types.CoverLetter{}
	if err := s.client.Do(ctx, http.MethodGet, PathCoverLetters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a cover letter by ID.
func (s *CoverLetterService) Get(ctx context.Context, id string) (*types.CoverLetter, error) {
	if id == "" {
		return nil, fmt.Errorf("cover letter id is required")
	}
	var out types.CoverLetter
	if err := s.client.Do(ctx, http.MethodGet, coverLetterPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a cover letter.
func (s *CoverLetterService) Update(ctx context.Context, id string, patch types.CoverLetterPatch) (*types.CoverLetter, error) {
	if id == "" {
		return nil, fmt.Errorf("cover letter id is required")
	}
	var out types.CoverLetter
	if err := s.client.Do(ctx, http.MethodPut, coverLetterPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a cover letter.
func (s *CoverLetterService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("cover letter id is required")
	}
	return s.client.Do(ctx, http.MethodDelete, coverLetterPath(id), nil, nil)
}

// Generate drafts a cover letter from résumé data and a job description.
func (s *CoverLetterService) Generate(ctx context.Context, req types.GenerateCoverLetterRequest) (*types.CoverLetter, error) {
	var out types.CoverLetter
	if err := s.client.Do(ctx, http.MethodPost, PathGenerateCoverLetter, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func coverLetterPath(id string) string {
	return PathCoverLetters + "/" + url.PathEscape(id)
}
