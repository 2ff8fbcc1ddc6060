// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	if content == "" {
		fmt.Fprintf(p.out, "└%s┘\n", border)
		return
	}
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintStepHeader outputs the title box of a form step with its progress.
func (p *Printer) PrintStepHeader(title, progress string) {
	p.printBox(fmt.Sprintf("%s  (%s)", title, progress), "")
}

// PrintAlert outputs a titled message box.
func (p *Printer) PrintAlert(title, message string) {
	p.printBox(title, message)
}

// PrintValidationErrors lists per-field messages under the step.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationErrors(messages []string) {
	for _, msg := range messages {
		fmt.Fprintf(p.out, "  ✗ %s\n", msg)
	}
}

// PrintResume outputs a human-readable summary of a résumé.
func (p *Printer) PrintResume(resume *types.Resume) {
	if resume == nil {
		return
	}

	title := "RESUME"
	if resume.ID != "" {
		title = fmt.Sprintf("RESUME %s", resume.ID)
	}
	p.printBox(title, strings.TrimSuffix(summarizeResumeData(&resume.ResumeData), "\n"))
}

// PrintResumeData outputs a summary of a résumé payload that has no ID yet.
func (p *Printer) PrintResumeData(data *types.ResumeData) {
	if data == nil {
		return
	}
	p.printBox("RESUME PAYLOAD", strings.TrimSuffix(summarizeResumeData(data), "\n"))
}

func summarizeResumeData(data *types.ResumeData) string {
	var sb strings.Builder

	pd := data.PersonalDetails
	sb.WriteString(fmt.Sprintf("Name:     %s %s\n", pd.FirstName, pd.LastName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", pd.Email))
	if pd.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", pd.Location))
	}
	sb.WriteString("\n")

	if data.Objective.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", data.Objective.Summary))
	}

	if len(data.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s\n", exp.JobTitle, exp.Company))
		}
		if len(data.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(data.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range data.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s)\n", edu.Degree, edu.University, edu.GraduationYear))
		}
		sb.WriteString("\n")
	}

	if len(data.Skills.Technical) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(data.Skills.Technical, ", ")))
	}

	if len(data.Projects) > 0 {
		sb.WriteString(fmt.Sprintf("Projects: %d\n", len(data.Projects)))
	}

	return sb.String()
}

// PrintResumeList outputs one line per résumé.
func (p *Printer) PrintResumeList(resumes []types.Resume) {
	if len(resumes) == 0 {
		p.printBox("RESUMES", "No resumes found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(resumes)))
	for _, r := range resumes {
		name := strings.TrimSpace(r.PersonalDetails.FirstName + " " + r.PersonalDetails.LastName)
		sb.WriteString(fmt.Sprintf("%s  %s\n", r.ID, name))
	}
	p.printBox("RESUMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetter outputs a cover letter with its body.
func (p *Printer) PrintCoverLetter(letter *types.CoverLetter) {
	if letter == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", letter.JobTitle))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", letter.CompanyName))
	if letter.ResumeID != "" {
		sb.WriteString(fmt.Sprintf("Resume:   %s\n", letter.ResumeID))
	}
	sb.WriteString("\n")
	sb.WriteString(letter.Content)

	title := "COVER LETTER"
	if letter.ID != "" {
		title = fmt.Sprintf("COVER LETTER %s", letter.ID)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetterList outputs one line per cover letter.
func (p *Printer) PrintCoverLetterList(letters []types.CoverLetter) {
	if len(letters) == 0 {
		p.printBox("COVER LETTERS", "No cover letters found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(letters)))
	for _, l := range letters {
		sb.WriteString(fmt.Sprintf("%s  %s @ %s\n", l.ID, l.JobTitle, l.CompanyName))
	}
	p.printBox("COVER LETTERS", strings.TrimSuffix(sb.String(), "\n"))
}
