package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// CoverLetterDraft is a generated cover letter before it is stored.
type CoverLetterDraft struct {
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Content     string `json:"content"`
}

// GenerationError reports generated output that could not be used.
type GenerationError struct {
	Task    string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Task, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Task, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generator produces polished résumés and cover letters.
type Generator struct {
	client Client
	logger *zap.Logger
}

// NewGenerator creates a Generator over client.
func NewGenerator(client Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// GenerateResume returns an improved version of data. Contact details are
// always carried over from the input unchanged.
func (g *Generator) GenerateResume(ctx context.Context, data types.ResumeData) (types.ResumeData, error) {
	const task = "generate resume"

	data.Normalize()
	input, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to encode resume: %w", err)
	}

	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeyPolishResume, map[string]string{
		"ResumeJSON": string(input),
	})
	if err != nil {
		return types.ResumeData{}, err
	}

	g.logger.Debug("requesting resume generation", zap.Int("prompt_chars", len(prompt)))
	raw, err := g.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return types.ResumeData{}, &GenerationError{Task: task, Message: "model request failed", Cause: err}
	}
	raw = CleanJSONBlock(raw)

	var out types.ResumeData
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return types.ResumeData{}, &GenerationError{Task: task, Message: "model returned invalid JSON", Cause: err}
	}
	out.PersonalDetails = data.PersonalDetails
	out.Normalize()

	if err := schemas.Validate(schemas.ResumeDataSchema, out); err != nil {
		return types.ResumeData{}, &GenerationError{Task: task, Message: "generated resume failed validation", Cause: err}
	}

	g.logger.Debug("resume generated",
		zap.Int("experience", len(out.Experience)),
		zap.Int("projects", len(out.Projects)))
	return out, nil
}

// GenerateCoverLetter drafts a cover letter for the job description.
func (g *Generator) GenerateCoverLetter(ctx context.Context, data types.ResumeData, jobDescription string) (*CoverLetterDraft, error) {
	const task = "generate cover letter"

	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("job description is required")
	}

	data.Normalize()
	input, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}

	prompt, err := prompts.Render(prompts.GenerationFile, prompts.KeyDraftCoverLetter, map[string]string{
		"ResumeJSON":     string(input),
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, err
	}

	g.logger.Debug("requesting cover letter generation", zap.Int("prompt_chars", len(prompt)))
	raw, err := g.client.GenerateJSON(ctx, prompt, TierAdvanced)
	if err != nil {
		return nil, &GenerationError{Task: task, Message: "model request failed", Cause: err}
	}
	raw = CleanJSONBlock(raw)

	if err := schemas.ValidateBytes(schemas.CoverLetterDraftSchema, []byte(raw)); err != nil {
		return nil, &GenerationError{Task: task, Message: "generated draft failed validation", Cause: err}
	}

	var draft CoverLetterDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, &GenerationError{Task: task, Message: "model returned invalid JSON", Cause: err}
	}
	draft.Content = strings.TrimSpace(draft.Content)

	return &draft, nil
}
