package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSubmitInProgress is returned when navigation is attempted while a submission is pending.
var ErrSubmitInProgress = errors.New("submission in progress")

// ValidationError lists every field of a step that failed validation.
type ValidationError struct {
	Step   string
	Fields map[string]string // field ID -> message
	order  []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed for step %q:", e.Step))
	for _, msg := range e.Messages() {
		sb.WriteString(" ")
		sb.WriteString(msg)
		sb.WriteString(";")
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Messages returns the field messages in the order the fields appear in the step.
func (e *ValidationError) Messages() []string {
	ids := e.order
	if len(ids) == 0 {
		ids = make([]string, 0, len(e.Fields))
		for id := range e.Fields {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.Fields[id])
	}
	return out
}

func requiredMessage(label string) string {
	return label + " is required"
}
