package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CoverLetterData is the cover-letter payload sent to the backend.
type CoverLetterData struct {
	ResumeID       string `json:"resumeId" yaml:"resumeId"`
	JobTitle       string `json:"jobTitle" yaml:"jobTitle" validate:"required"`
	CompanyName    string `json:"companyName" yaml:"companyName" validate:"required"`
	Content        string `json:"content" yaml:"content" validate:"required"`
	Customizations string `json:"customizations,omitempty" yaml:"customizations,omitempty"`
}

// CoverLetter is a stored cover letter as returned by the backend.
type CoverLetter struct {
	ID              string `json:"id" yaml:"id"`
	CoverLetterData `yaml:",inline"`
	CreatedAt       time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// CoverLetterPatch is a partial cover-letter update. Nil fields are left untouched.
type CoverLetterPatch struct {
	ResumeID       *string `json:"resumeId,omitempty" yaml:"resumeId,omitempty"`
	JobTitle       *string `json:"jobTitle,omitempty" yaml:"jobTitle,omitempty" validate:"omitempty,min=1"`
	CompanyName    *string `json:"companyName,omitempty" yaml:"companyName,omitempty" validate:"omitempty,min=1"`
	Content        *string `json:"content,omitempty" yaml:"content,omitempty" validate:"omitempty,min=1"`
	Customizations *string `json:"customizations,omitempty" yaml:"customizations,omitempty"`
}

// Apply merges the non-nil fields of the patch into data.
func (p *CoverLetterPatch) Apply(data CoverLetterData) CoverLetterData {
	if p == nil {
		return data
	}
	if p.ResumeID != nil {
		data.ResumeID = *p.ResumeID
	}
	if p.JobTitle != nil {
		data.JobTitle = *p.JobTitle
	}
	if p.CompanyName != nil {
		data.CompanyName = *p.CompanyName
	}
	if p.Content != nil {
		data.Content = *p.Content
	}
	if p.Customizations != nil {
		data.Customizations = *p.Customizations
	}
	return data
}

// GenerateCoverLetterRequest asks the backend to draft a cover letter from résumé data.
type GenerateCoverLetterRequest struct {
	ResumeData     ResumeData `json:"resumeData" yaml:"resumeData"`
	JobDescription string     `json:"jobDescription" yaml:"jobDescription" validate:"required"`
	ResumeID       string     `json:"resumeId,omitempty" yaml:"resumeId,omitempty"`
}

// Validate validates the CoverLetterData using the validator.
func (c *CoverLetterData) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Validate validates the CoverLetterPatch using the validator.
func (p *CoverLetterPatch) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the GenerateCoverLetterRequest using the validator.
func (r *GenerateCoverLetterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
