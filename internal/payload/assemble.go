// Package payload shapes flat form values into the nested résumé payload sent to the backend.
package payload

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Assemble maps flat form data into the nested résumé shape. It is pure:
// the same input always yields the same output and data is never modified.
func Assemble(data form.FormData) types.ResumeData {
	get := func(id string) string {
		v, _ := data.Lookup(id)
		return v
	}

	return types.ResumeData{
		PersonalDetails: types.PersonalDetails{
			FirstName: get(form.FieldFirstName),
			LastName:  get(form.FieldLastName),
			Email:     get(form.FieldEmail),
			Phone:     get(form.FieldPhone),
			Location:  get(form.FieldLocation),
			Portfolio: get(form.FieldPortfolio),
			LinkedIn:  get(form.FieldLinkedIn),
		},
		Objective: types.Objective{
			Summary:         get(form.FieldObjective),
			YearsExperience: get(form.FieldExperience),
			DesiredRoles:    SplitList(get(form.FieldDesiredRoles)),
		},
		Education: []types.Education{{
			Degree:         get(form.FieldDegree),
			University:     get(form.FieldUniversity),
			GraduationYear: get(form.FieldGradYear),
			Coursework:     SplitList(get(form.FieldCoursework)),
		}},
		Skills: types.Skills{
			Technical:  SplitList(get(form.FieldTechnicalSkills)),
			Soft:       SplitList(get(form.FieldSoftSkills)),
			Additional: SplitList(get(form.FieldAdditionalSkills)),
		},
		Experience: []types.Experience{{
			JobTitle:     get(form.FieldJobTitle),
			Company:      get(form.FieldCompany),
			Location:     get(form.FieldJobLocation),
			StartDate:    get(form.FieldStartDate),
			EndDate:      get(form.FieldEndDate),
			Achievements: get(form.FieldAchievements),
		}},
		Projects: []types.Project{{
			Title:       get(form.FieldProjectTitle),
			Description: get(form.FieldProjectDesc),
			Link:        get(form.FieldProjectLink),
		}},
		ExtraCurricular: types.ExtraCurricular{
			Activities:  get(form.FieldActivities),
			SocialLinks: SplitList(get(form.FieldSocialLinks)),
		},
		Leadership: types.Leadership{
			Role:             get(form.FieldLeadershipRole),
			Organization:     get(form.FieldOrganization),
			Responsibilities: get(form.FieldResponsibilities),
		},
	}
}

// SplitList splits a comma-separated value and trims each element.
// Element order and empty elements between commas are preserved.
// An empty value yields an empty, non-nil slice.
func SplitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// Validate checks an assembled payload against the résumé schema.
func Validate(data types.ResumeData) error {
	return schemas.Validate(schemas.ResumeDataSchema, data)
}
