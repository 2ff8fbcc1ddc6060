package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// checkResumeRef verifies that a cover letter's résumé link points at a stored résumé.
func (s *Server) checkResumeRef(ctx context.Context, resumeID string) error {
	id, err := db.ParseOptionalID(resumeID)
	if err != nil {
		return &ErrValidation{Field: "resumeId", Message: "must be a valid id"}
	}
	if id == nil {
		return nil
	}
	resume, err := s.store.GetResume(ctx, *id)
	if err != nil {
		return err
	}
	if resume == nil {
		return &ErrValidation{Field: "resumeId", Message: "no resume with id " + resumeID}
	}
	return nil
}

func (s *Server) handleCreateCoverLetter(w http.ResponseWriter, r *http.Request) {
	var data types.CoverLetterData
	if !s.decodeJSON(w, r, &data) {
		return
	}
	if err := data.Validate(); err != nil {
		s.fail(w, validationError(err))
		return
	}
	if err := s.checkResumeRef(r.Context(), data.ResumeID); err != nil {
		s.fail(w, err)
		return
	}

	letter, err := s.store.CreateCoverLetter(r.Context(), data)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, letter)
}

func (s *Server) handleListCoverLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := s.store.ListCoverLetters(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, letters)
}

func (s *Server) handleGetCoverLetter(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "cover letter")
	if !ok {
		return
	}

	letter, err := s.store.GetCoverLetter(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if letter == nil {
		s.fail(w, &ErrNotFound{Kind: "cover letter", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, letter)
}

func (s *Server) handleUpdateCoverLetter(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "cover letter")
	if !ok {
		return
	}

	var patch types.CoverLetterPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		s.fail(w, validationError(err))
		return
	}

	existing, err := s.store.GetCoverLetter(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if existing == nil {
		s.fail(w, &ErrNotFound{Kind: "cover letter", ID: id.String()})
		return
	}

	merged := patch.Apply(existing.CoverLetterData)
	if patch.ResumeID != nil {
		if err := s.checkResumeRef(r.Context(), merged.ResumeID); err != nil {
			s.fail(w, err)
			return
		}
	}

	updated, err := s.store.UpdateCoverLetter(r.Context(), id, merged)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCoverLetter(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "cover letter")
	if !ok {
		return
	}

	if err := s.store.DeleteCoverLetter(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerateCoverLetter drafts a cover letter for a job description and stores it
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.fail(w, &ErrGeneratorUnavailable{})
		return
	}

	var req types.GenerateCoverLetterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.JobDescription = strings.TrimSpace(req.JobDescription)
	req.ResumeData.Normalize()
	if err := req.Validate(); err != nil {
		s.fail(w, validationError(err))
		return
	}
	if err := s.checkResumeRef(r.Context(), req.ResumeID); err != nil {
		s.fail(w, err)
		return
	}

	draft, err := s.generator.GenerateCoverLetter(r.Context(), req.ResumeData, req.JobDescription)
	if err != nil {
		s.generationFailed(w, err)
		return
	}

	letter, err := s.store.CreateCoverLetter(r.Context(), types.CoverLetterData{
		ResumeID:    req.ResumeID,
		JobTitle:    draft.JobTitle,
		CompanyName: draft.CompanyName,
		Content:     draft.Content,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, letter)
}
