package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// decodeResumeData reads, normalizes and validates a full résumé body.
func (s *Server) decodeResumeData(w http.ResponseWriter, r *http.Request) (types.ResumeData, bool) {
	var data types.ResumeData
	if !s.decodeJSON(w, r, &data) {
		return data, false
	}
	data.Normalize()
	if err := data.Validate(); err != nil {
		s.fail(w, validationError(err))
		return data, false
	}
	return data, true
}

// handleSubmitResume stores a résumé from the wizard and answers with its ID
func (s *Server) handleSubmitResume(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeResumeData(w, r)
	if !ok {
		return
	}

	resume, err := s.store.CreateResume(r.Context(), data)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, types.SubmitResponse{ID: resume.ID})
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeResumeData(w, r)
	if !ok {
		return
	}

	resume, err := s.store.CreateResume(r.Context(), data)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.ListResumes(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if resume == nil {
		s.fail(w, &ErrNotFound{Kind: "resume", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume merges a partial update into the stored résumé
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	var patch types.ResumePatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		s.fail(w, validationError(err))
		return
	}

	existing, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if existing == nil {
		s.fail(w, &ErrNotFound{Kind: "resume", ID: id.String()})
		return
	}

	merged := patch.Apply(existing.ResumeData)
	if err := merged.Validate(); err != nil {
		s.fail(w, validationError(err))
		return
	}

	updated, err := s.store.UpdateResume(r.Context(), id, merged)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerateResume polishes the posted résumé with the model and stores the result
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.fail(w, &ErrGeneratorUnavailable{})
		return
	}
	data, ok := s.decodeResumeData(w, r)
	if !ok {
		return
	}

	generated, err := s.generator.GenerateResume(r.Context(), data)
	if err != nil {
		s.generationFailed(w, err)
		return
	}

	resume, err := s.store.CreateResume(r.Context(), generated)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// generationFailed reports model output that could not be used as a 502.
func (s *Server) generationFailed(w http.ResponseWriter, err error) {
	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		s.logger.Warn("generation failed", zap.String("task", genErr.Task), zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, CodeGeneration, "Generation failed: "+genErr.Message)
		return
	}
	s.fail(w, err)
}
