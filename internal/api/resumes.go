package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Endpoint paths.
const (
	PathSubmitResume        = "/api/resumes"
	PathResumes             = "/resume"
	PathGenerateResume      = "/resume/generate"
	PathCoverLetters        = "/cover-letter"
	PathGenerateCoverLetter = "/cover-letter/generate"
)

// SubmitResume posts the assembled form payload to the screen submission
// endpoint. A 2xx response with an empty or non-JSON body counts as success
// without an ID.
func (c *Client) SubmitResume(ctx context.Context, data types.ResumeData) (types.SubmitResponse, error) {
	c.logger.Info("submitting resume", zap.String("url", c.baseURL+PathSubmitResume))

	var out types.SubmitResponse
	if err := c.Do(ctx, http.MethodPost, PathSubmitResume, data, &out); err != nil {
		return types.SubmitResponse{}, err
	}

	c.logger.Info("resume submitted", zap.String("id", out.ID))
	return out, nil
}

// ResumeService groups the /resume endpoints.
type ResumeService struct {
	client *Client
}

// Resumes returns the résumé endpoints.
func (c *Client) Resumes() *ResumeService {
	return &ResumeService{client: c}
}

// Create stores a new résumé.
func (s *ResumeService) Create(ctx context.Context, data types.ResumeData) (*types.Resume, error) {
	var out types.Resume
	if err := s.client.Do(ctx, http.MethodPost, PathResumes, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every stored résumé.
func (s *ResumeService) List(ctx context.Context) ([]types.Resume, error) {
	out := []types.Resume{}
	if err := s.client.Do(ctx, http.MethodGet, PathResumes, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a résumé by ID.
func (s *ResumeService) Get(ctx context.Context, id string) (*types.Resume, error) {
	if id == "" {
		return nil, fmt.Errorf("resume id is required")
	}
	var out types.Resume
	if err := s.client.Do(ctx, http.MethodGet, resumePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a résumé.
func (s *ResumeService) Update(ctx context.Context, id string, patch types.ResumePatch) (*types.Resume, error) {
	if id == "" {
		return nil, fmt.Errorf("resume id is required")
	}
	var out types.Resume
	if err := s.client.Do(ctx, http.MethodPut, resumePath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a résumé.
func (s *ResumeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("resume id is required")
	}
	return s.client.Do(ctx, http.MethodDelete, resumePath(id), nil, nil)
}

// Generate asks the backend to produce an AI-polished résumé from the data.
func (s *ResumeService) Generate(ctx context.Context, data types.ResumeData) (*types.Resume, error) {
	var out types.Resume
	if err := s.client.Do(ctx, http.MethodPost, PathGenerateResume, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func resumePath(id string) string {
	return PathResumes + "/" + url.PathEscape(id)
}
