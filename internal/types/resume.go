// Package types provides the request and response shapes exchanged with the résumé backend.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// PersonalDetails holds the candidate's contact information.
type PersonalDetails struct {
	FirstName string `json:"firstName" yaml:"firstName" validate:"required"`
	LastName  string `json:"lastName" yaml:"lastName" validate:"required"`
	Email     string `json:"email" yaml:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
	Portfolio string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
}

// Objective is the career summary section.
type Objective struct {
	Summary         string   `json:"summary" yaml:"summary" validate:"required"`
	YearsExperience string   `json:"yearsExperience,omitempty" yaml:"yearsExperience,omitempty"`
	DesiredRoles    []string `json:"desiredRoles" yaml:"desiredRoles"`
}

// Education is a single degree entry.
type Education struct {
	Degree         string   `json:"degree" yaml:"degree" validate:"required"`
	University     string   `json:"university" yaml:"university" validate:"required"`
	GraduationYear string   `json:"graduationYear" yaml:"graduationYear" validate:"required"`
	Coursework     []string `json:"coursework" yaml:"coursework"`
}

// Skills groups skills by category.
type Skills struct {
	Technical  []string `json:"technical" yaml:"technical" validate:"required,min=1"`
	Soft       []string `json:"soft" yaml:"soft"`
	Additional []string `json:"additional" yaml:"additional"`
}

// Experience is a single employment entry.
type Experience struct {
	JobTitle     string `json:"jobTitle" yaml:"jobTitle" validate:"required"`
	Company      string `json:"company" yaml:"company" validate:"required"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate    string `json:"startDate" yaml:"startDate" validate:"required"`
	EndDate      string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Achievements string `json:"achievements" yaml:"achievements" validate:"required"`
}

// Project is a single project entry.
type Project struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
}

// ExtraCurricular holds activities outside of work.
type ExtraCurricular struct {
	Activities  string   `json:"activities,omitempty" yaml:"activities,omitempty"`
	SocialLinks []string `json:"socialLinks" yaml:"socialLinks"`
}

// Leadership holds an optional leadership role.
type Leadership struct {
	Role             string `json:"role,omitempty" yaml:"role,omitempty"`
	Organization     string `json:"organization,omitempty" yaml:"organization,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`
}

// ResumeData is the nested résumé payload sent to the backend.
type ResumeData struct {
	PersonalDetails PersonalDetails `json:"personalDetails" yaml:"personalDetails"`
	Objective       Objective       `json:"objective" yaml:"objective"`
	Education       []Education     `json:"education" yaml:"education" validate:"required,min=1,dive"`
	Skills          Skills          `json:"skills" yaml:"skills"`
	Experience      []Experience    `json:"experience" yaml:"experience" validate:"required,min=1,dive"`
	Projects        []Project       `json:"projects" yaml:"projects" validate:"required,min=1,dive"`
	ExtraCurricular ExtraCurricular `json:"extraCurricular" yaml:"extraCurricular"`
	Leadership      Leadership      `json:"leadership" yaml:"leadership"`
}

// Resume is a stored résumé as returned by the backend.
type Resume struct {
	ID         string `json:"id" yaml:"id"`
	ResumeData `yaml:",inline"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// ResumePatch is a partial résumé update. Nil sections are left untouched.
type ResumePatch struct {
	PersonalDetails *PersonalDetails `json:"personalDetails,omitempty" yaml:"personalDetails,omitempty" validate:"omitempty"`
	Objective       *Objective       `json:"objective,omitempty" yaml:"objective,omitempty" validate:"omitempty"`
	Education       []Education      `json:"education,omitempty" yaml:"education,omitempty" validate:"omitempty,dive"`
	Skills          *Skills          `json:"skills,omitempty" yaml:"skills,omitempty" validate:"omitempty"`
	Experience      []Experience     `json:"experience,omitempty" yaml:"experience,omitempty" validate:"omitempty,dive"`
	Projects        []Project        `json:"projects,omitempty" yaml:"projects,omitempty" validate:"omitempty,dive"`
	ExtraCurricular *ExtraCurricular `json:"extraCurricular,omitempty" yaml:"extraCurricular,omitempty"`
	Leadership      *Leadership      `json:"leadership,omitempty" yaml:"leadership,omitempty"`
}

// Apply merges the non-nil sections of the patch into data.
func (p *ResumePatch) Apply(data ResumeData) ResumeData {
	if p == nil {
		return data
	}
	if p.PersonalDetails != nil {
		data.PersonalDetails = *p.PersonalDetails
	}
	if p.Objective != nil {
		data.Objective = *p.Objective
	}
	if p.Education != nil {
		data.Education = p.Education
	}
	if p.Skills != nil {
		data.Skills = *p.Skills
	}
	if p.Experience != nil {
		data.Experience = p.Experience
	}
	if p.Projects != nil {
		data.Projects = p.Projects
	}
	if p.ExtraCurricular != nil {
		data.ExtraCurricular = *p.ExtraCurricular
	}
	if p.Leadership != nil {
		data.Leadership = *p.Leadership
	}
	return data
}

// SubmitResponse is the body returned by a successful screen submission.
// ID may be empty when the backend does not echo it.
type SubmitResponse struct {
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Validate validates the ResumeData using the validator.
func (r *ResumeData) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ResumePatch using the validator.
func (p *ResumePatch) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Normalize replaces nil lists with empty ones so they encode as [] rather than null.
func (r *ResumeData) Normalize() {
	r.Objective.DesiredRoles = nonNil(r.Objective.DesiredRoles)
	r.Skills.Technical = nonNil(r.Skills.Technical)
	r.Skills.Soft = nonNil(r.Skills.Soft)
	r.Skills.Additional = nonNil(r.Skills.Additional)
	r.ExtraCurricular.SocialLinks = nonNil(r.ExtraCurricular.SocialLinks)
	if r.Education == nil {
		r.Education = []Education{}
	}
	for i := range r.Education {
		r.Education[i].Coursework = nonNil(r.Education[i].Coursework)
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
