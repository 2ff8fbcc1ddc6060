package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store.
type memStore struct {
	mu       sync.Mutex
	resumes  map[uuid.UUID]types.Resume
	letters  map[uuid.UUID]types.CoverLetter
	pingErr  error
	failNext error
}

func newMemStore() *memStore {
	return &memStore{
		resumes: make(map[uuid.UUID]types.Resume),
		letters: make(map[uuid.UUID]types.CoverLetter),
	}
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) CreateResume(_ context.Context, data types.ResumeData) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return nil, err
	}
	now := time.Now().UTC()
	r := types.Resume{ID: uuid.NewString(), ResumeData: data, CreatedAt: now, UpdatedAt: now}
	m.resumes[uuid.MustParse(r.ID)] = r
	return &r, nil
}

func (m *memStore) GetResume(_ context.Context, id uuid.UUID) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) ListResumes(context.Context) ([]types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.Resume{}
	for _, r := range m.resumes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateResume(_ context.Context, id uuid.UUID, data types.ResumeData) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	r.ResumeData = data
	r.UpdatedAt = time.Now().UTC()
	m.resumes[id] = r
	return &r, nil
}

func (m *memStore) DeleteResume(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

func (m *memStore) CreateCoverLetter(_ context.Context, data types.CoverLetterData) (*types.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	l := types.CoverLetter{ID: uuid.NewString(), CoverLetterData: data, CreatedAt: now, UpdatedAt: now}
	m.letters[uuid.MustParse(l.ID)] = l
	return &l, nil
}

func (m *memStore) GetCoverLetter(_ context.Context, id uuid.UUID) (*types.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.letters[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memStore) ListCoverLetters(context.Context) ([]types.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.CoverLetter{}
	for _, l := range m.letters {
		out = append(out, l)
	}
	return out, nil
}

func (m *memStore) UpdateCoverLetter(_ context.Context, id uuid.UUID, data types.CoverLetterData) (*types.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.letters[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	l.CoverLetterData = data
	m.letters[id] = l
	return &l, nil
}

func (m *memStore) DeleteCoverLetter(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.letters[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.letters, id)
	return nil
}

type fakeGenerator struct {
	err            error
	jobDescription string
}

func (g *fakeGenerator) GenerateResume(_ context.Context, data types.ResumeData) (types.ResumeData, error) {
	if g.err != nil {
		return types.ResumeData{}, g.err
	}
	data.Objective.Summary = "Polished: " + data.Objective.Summary
	return data, nil
}

func (g *fakeGenerator) GenerateCoverLetter(_ context.Context, _ types.ResumeData, jobDescription string) (*llm.CoverLetterDraft, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.jobDescription = jobDescription
	return &llm.CoverLetterDraft{JobTitle: "Platform Engineer", CompanyName: "Acme", Content: "Dear Acme"}, nil
}

func newTestServer(t *testing.T, store *memStore, gen Generator) http.Handler {
	t.Helper()
	s, err := New(Config{
		Store:     store,
		Generator: gen,
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func validResume() types.ResumeData {
	return types.ResumeData{
		PersonalDetails: types.PersonalDetails{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Objective:       types.Objective{Summary: "Engineer"},
		Education:       []types.Education{{Degree: "BSc", University: "London", GraduationYear: "1835"}},
		Skills:          types.Skills{Technical: []string{"Go"}},
		Experience:      []types.Experience{{JobTitle: "Analyst", Company: "Babbage", StartDate: "1842", Achievements: "Note G"}},
		Projects:        []types.Project{{Title: "Engine", Description: "Programs"}},
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	store := newMemStore()
	h := newTestServer(t, store, nil)

	w := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["generation"])

	store.pingErr = errors.New("down")
	w = doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmitResume(t *testing.T) {
	store := newMemStore()
	h := newTestServer(t, store, nil)

	w := doJSON(t, h, http.MethodPost, "/api/resumes", validResume())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeBody[types.SubmitResponse](t, w)
	require.NotEmpty(t, resp.ID)

	stored := store.resumes[uuid.MustParse(resp.ID)]
	assert.Equal(t, "Ada", stored.PersonalDetails.FirstName)
	assert.Equal(t, []string{}, stored.Skills.Soft, "lists are normalized before storing")
}

func TestSubmitResume_ValidationError(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	data := validResume()
	data.PersonalDetails.Email = ""
	data.Projects = nil

	w := doJSON(t, h, http.MethodPost, "/api/resumes", data)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, CodeValidation, resp["error"])
	assert.Contains(t, resp["message"], "PersonalDetails.Email is required")
	assert.Contains(t, resp["message"], "Projects")
}

func TestSubmitResume_InvalidBody(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/resumes", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, CodeInvalidRequest, resp["error"])
	assert.Contains(t, resp["message"], "Invalid request body")
}

func TestSubmitResume_StoreFailureHidesDetails(t *testing.T) {
	store := newMemStore()
	store.failNext = errors.New("connection reset by peer")
	h := newTestServer(t, store, nil)

	w := doJSON(t, h, http.MethodPost, "/api/resumes", validResume())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, CodeInternal, resp["error"])
	assert.NotContains(t, resp["message"], "connection reset")
}

func TestResumeCRUD(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	w := doJSON(t, h, http.MethodPost, "/resume", validResume())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[types.Resume](t, w)
	require.NotEmpty(t, created.ID)

	w = doJSON(t, h, http.MethodGet, "/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]types.Resume](t, w), 1)

	w = doJSON(t, h, http.MethodGet, "/resume/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decodeBody[types.Resume](t, w).PersonalDetails.FirstName)

	w = doJSON(t, h, http.MethodPut, "/resume/"+created.ID, map[string]any{
		"objective": map[string]any{"summary": "Updated", "desiredRoles": []string{"CTO"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[types.Resume](t, w)
	assert.Equal(t, "Updated", updated.Objective.Summary)
	assert.Equal(t, "Lovelace", updated.PersonalDetails.LastName, "untouched sections are kept")

	w = doJSON(t, h, http.MethodDelete, "/resume/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h, http.MethodGet, "/resume/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, CodeNotFound, resp["error"])
	assert.Equal(t, "resume not found: "+created.ID, resp["message"])
}

func TestResume_NotFound(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)
	missing := uuid.NewString()

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/resume/" + missing, nil},
		{http.MethodGet, "/resume/not-a-uuid", nil},
		{http.MethodPut, "/resume/" + missing, map[string]any{}},
		{http.MethodDelete, "/resume/" + missing, nil},
		{http.MethodGet, "/cover-letter/" + missing, nil},
		{http.MethodDelete, "/cover-letter/" + missing, nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doJSON(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestUpdateResume_RejectsInvalidMerge(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	w := doJSON(t, h, http.MethodPost, "/resume", validResume())
	created := decodeBody[types.Resume](t, w)

	w = doJSON(t, h, http.MethodPut, "/resume/"+created.ID, map[string]any{
		"personalDetails": map[string]any{"firstName": "Ada", "lastName": "Lovelace", "email": "not-an-email"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["message"], "valid email")
}

func TestGenerate_UnavailableWithoutGenerator(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	w := doJSON(t, h, http.MethodPost, "/resume/generate", validResume())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, CodeUnavailable, decodeBody[map[string]string](t, w)["error"])

	w = doJSON(t, h, http.MethodPost, "/cover-letter/generate", types.GenerateCoverLetterRequest{
		ResumeData: validResume(), JobDescription: "x",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerateResume(t *testing.T) {
	store := newMemStore()
	h := newTestServer(t, store, &fakeGenerator{})

	w := doJSON(t, h, http.MethodPost, "/resume/generate", validResume())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resume := decodeBody[types.Resume](t, w)
	assert.Equal(t, "Polished: Engineer", resume.Objective.Summary)
	assert.Len(t, store.resumes, 1)
}

func TestGenerateResume_GenerationError(t *testing.T) {
	gen := &fakeGenerator{err: &llm.GenerationError{Task: "generate resume", Message: "model returned invalid JSON"}}
	h := newTestServer(t, newMemStore(), gen)

	w := doJSON(t, h, http.MethodPost, "/resume/generate", validResume())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, CodeGeneration, resp["error"])
	assert.Equal(t, "Generation failed: model returned invalid JSON", resp["message"])
}

func TestCoverLetterCRUD(t *testing.T) {
	store := newMemStore()
	h := newTestServer(t, store, nil)

	w := doJSON(t, h, http.MethodPost, "/resume", validResume())
	resume := decodeBody[types.Resume](t, w)

	w = doJSON(t, h, http.MethodPost, "/cover-letter", types.CoverLetterData{
		ResumeID: resume.ID, JobTitle: "SRE", CompanyName: "Initech", Content: "Hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	letter := decodeBody[types.CoverLetter](t, w)
	assert.Equal(t, resume.ID, letter.ResumeID)

	content := "Hello again"
	w = doJSON(t, h, http.MethodPut, "/cover-letter/"+letter.ID, types.CoverLetterPatch{Content: &content})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hello again", decodeBody[types.CoverLetter](t, w).Content)

	w = doJSON(t, h, http.MethodGet, "/cover-letter", nil)
	assert.Len(t, decodeBody[[]types.CoverLetter](t, w), 1)

	w = doJSON(t, h, http.MethodDelete, "/cover-letter/"+letter.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.letters)
}

func TestCreateCoverLetter_UnknownResume(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	w := doJSON(t, h, http.MethodPost, "/cover-letter", types.CoverLetterData{
		ResumeID: uuid.NewString(), JobTitle: "SRE", CompanyName: "Initech", Content: "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/cover-letter", types.CoverLetterData{
		ResumeID: "bogus", JobTitle: "SRE", CompanyName: "Initech", Content: "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateCoverLetter(t *testing.T) {
	gen := &fakeGenerator{}
	store := newMemStore()
	h := newTestServer(t, store, gen)

	w := doJSON(t, h, http.MethodPost, "/cover-letter/generate", types.GenerateCoverLetterRequest{
		ResumeData:     validResume(),
		JobDescription: "  Platform Engineer at Acme  ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	letter := decodeBody[types.CoverLetter](t, w)
	assert.Equal(t, "Acme", letter.CompanyName)
	assert.Equal(t, "Dear Acme", letter.Content)
	assert.Equal(t, "Platform Engineer at Acme", gen.jobDescription)
	assert.Len(t, store.letters, 1)
}

func TestGenerateCoverLetter_BlankJobDescription(t *testing.T) {
	h := newTestServer(t, newMemStore(), &fakeGenerator{})

	w := doJSON(t, h, http.MethodPost, "/cover-letter/generate", types.GenerateCoverLetterRequest{
		ResumeData:     validResume(),
		JobDescription: "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["message"], "JobDescription is required")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, newMemStore(), nil)

	w := doJSON(t, h, http.MethodOptions, "/resume", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestRateLimit(t *testing.T) {
	s, err := New(Config{
		Store: newMemStore(),
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  2,
			DefaultWindow: time.Hour,
		},
	})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()
	h := s.Handler()

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodGet, "/resume", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doJSON(t, h, http.MethodGet, "/resume", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, CodeRateLimited, resp["error"])
	assert.NotEmpty(t, resp["message"])
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "email", Message: "bad"}, http.StatusBadRequest},
		{"not found", &ErrNotFound{Kind: "resume", ID: "x"}, http.StatusNotFound},
		{"db not found", db.ErrNotFound, http.StatusNotFound},
		{"unavailable", &ErrGeneratorUnavailable{}, http.StatusServiceUnavailable},
		{"unknown", assert.AnError, http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
