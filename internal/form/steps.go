package form

// Field IDs of the résumé form. The payload assembler reads values by these keys.
const (
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldLocation         = "location"
	FieldPortfolio        = "portfolio"
	FieldLinkedIn         = "linkedin"
	FieldObjective        = "objective"
	FieldExperience       = "experience"
	FieldDesiredRoles     = "desiredRoles"
	FieldDegree           = "degree"
	FieldUniversity       = "university"
	FieldGradYear         = "gradYear"
	FieldCoursework       = "coursework"
	FieldTechnicalSkills  = "technicalSkills"
	FieldSoftSkills       = "softSkills"
	FieldAdditionalSkills = "additionalSkills"
	FieldJobTitle         = "jobTitle"
	FieldCompany          = "company"
	FieldJobLocation      = "jobLocation"
	FieldStartDate        = "startDate"
	FieldEndDate          = "endDate"
	FieldAchievements     = "achievements"
	FieldProjectTitle     = "projectTitle"
	FieldProjectDesc      = "projectDesc"
	FieldProjectLink      = "projectLink"
	FieldActivities       = "activities"
	FieldSocialLinks      = "socialLinks"
	FieldLeadershipRole   = "leadershipRole"
	FieldOrganization     = "organization"
	FieldResponsibilities = "responsibilities"
)

// ResumeSteps returns the steps of the résumé form in display order.
// A fresh slice is returned on every call.
func ResumeSteps() []FormStep {
	return []FormStep{
		{
			Title: "Personal Details",
			Icon:  "person.fill",
			Fields: []FormField{
				{ID: FieldFirstName, Label: "First Name", Kind: KindText, Placeholder: "Enter your first name", Required: true},
				{ID: FieldLastName, Label: "Last Name", Kind: KindText, Placeholder: "Enter your last name", Required: true},
				{ID: FieldEmail, Label: "Email", Kind: KindEmail, Placeholder: "Enter your email", Required: true},
				{ID: FieldPhone, Label: "Phone Number", Kind: KindTel, Placeholder: "Enter your phone number"},
				{ID: FieldLocation, Label: "Location", Kind: KindText, Placeholder: "Enter your location"},
				{ID: FieldPortfolio, Label: "Portfolio Website", Kind: KindURL, Placeholder: "Enter your portfolio URL"},
				{ID: FieldLinkedIn, Label: "LinkedIn Profile", Kind: KindURL, Placeholder: "Enter your LinkedIn URL"},
			},
		},
		{
			Title: "Objective",
			Icon:  "target",
			Fields: []FormField{
				{ID: FieldObjective, Label: "Career Summary", Kind: KindTextarea, Placeholder: "Brief summary of your career goals and aspirations", Required: true, Multiline: true},
				{ID: FieldExperience, Label: "Years of Experience", Kind: KindText, Placeholder: "Enter your total years of experience"},
				{ID: FieldDesiredRoles, Label: "Desired Job Roles", Kind: KindText, Placeholder: "e.g., Software Engineer, Tech Lead (separate with commas)"},
			},
		},
		{
			Title: "Education",
			Icon:  "graduationcap.fill",
			Fields: []FormField{
				{ID: FieldDegree, Label: "Degree Name", Kind: KindText, Placeholder: "Enter your degree name", Required: true},
				{ID: FieldUniversity, Label: "University Name", Kind: KindText, Placeholder: "Enter your university name", Required: true},
				{ID: FieldGradYear, Label: "Graduation Year", Kind: KindText, Placeholder: "Enter your graduation year", Required: true},
				{ID: FieldCoursework, Label: "Relevant Coursework", Kind: KindText, Placeholder: "Enter relevant courses (separate with commas)"},
			},
		},
		{
			Title: "Skills",
			Icon:  "hammer.fill",
			Fields: []FormField{
				{ID: FieldTechnicalSkills, Label: "Technical Skills", Kind: KindText, Placeholder: "Enter technical skills (separate with commas)", Required: true},
				{ID: FieldSoftSkills, Label: "Soft Skills", Kind: KindText, Placeholder: "Enter soft skills (separate with commas)"},
				{ID: FieldAdditionalSkills, Label: "Additional Skills", Kind: KindText, Placeholder: "Enter additional skills, certifications (separate with commas)"},
			},
		},
		{
			Title: "Experience",
			Icon:  "briefcase.fill",
			Fields: []FormField{
				{ID: FieldJobTitle, Label: "Job Title", Kind: KindText, Placeholder: "Enter your job title", Required: true},
				{ID: FieldCompany, Label: "Company Name", Kind: KindText, Placeholder: "Enter company name", Required: true},
				{ID: FieldJobLocation, Label: "Location", Kind: KindText, Placeholder: "Enter job location"},
				{ID: FieldStartDate, Label: "Start Date", Kind: KindDate, Placeholder: "MM/YYYY", Required: true},
				{ID: FieldEndDate, Label: "End Date", Kind: KindDate, Placeholder: "MM/YYYY or Present"},
				{ID: FieldAchievements, Label: "Achievements/Responsibilities", Kind: KindTextarea, Placeholder: "Enter your key achievements and responsibilities", Required: true, Multiline: true},
			},
		},
		{
			Title: "Projects",
			Icon:  "folder.fill",
			Fields: []FormField{
				{ID: FieldProjectTitle, Label: "Project Title", Kind: KindText, Placeholder: "Enter project title", Required: true},
				{ID: FieldProjectDesc, Label: "Description", Kind: KindTextarea, Placeholder: "Enter project description including technologies used", Required: true, Multiline: true},
				{ID: FieldProjectLink, Label: "Project Link", Kind: KindURL, Placeholder: "Enter project URL (if applicable)"},
			},
		},
		{
			Title: "Extra-Curricular",
			Icon:  "person.2.fill",
			Fields: []FormField{
				{ID: FieldActivities, Label: "Activities", Kind: KindTextarea, Placeholder: "Describe your extra-curricular activities", Multiline: true},
				{ID: FieldSocialLinks, Label: "Social Media Links", Kind: KindText, Placeholder: "Enter relevant social media links (separate with commas)"},
			},
		},
		{
			Title: "Leadership",
			Icon:  "star.fill",
			Fields: []FormField{
				{ID: FieldLeadershipRole, Label: "Leadership Role", Kind: KindText, Placeholder: "Enter your leadership role"},
				{ID: FieldOrganization, Label: "Organization Name", Kind: KindText, Placeholder: "Enter organization name"},
				{ID: FieldResponsibilities, Label: "Responsibilities", Kind: KindTextarea, Placeholder: "Describe your leadership responsibilities", Multiline: true},
			},
		},
	}
}
