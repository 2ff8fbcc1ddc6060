package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResumeController(t *testing.T) *Controller {
	t.Helper()
	c, err := NewController(ResumeSteps())
	require.NoError(t, err)
	return c
}

// fillRequired sets every required field of the current step to a placeholder value.
func fillRequired(c *Controller) {
	for _, f := range c.Step().Fields {
		if f.Required {
			c.SetValue(f.ID, "value for "+f.ID)
		}
	}
}

func TestNewController_NoSteps(t *testing.T) {
	c, err := NewController(nil)
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNext_BlockedWhenRequiredFieldsMissing(t *testing.T) {
	c := newResumeController(t)

	action, err := c.Next()
	require.Error(t, err)
	assert.Equal(t, ActionNone, action)
	assert.Equal(t, 0, c.StepIndex())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Personal Details", verr.Step)
	assert.Equal(t, map[string]string{
		FieldFirstName: "First Name is required",
		FieldLastName:  "Last Name is required",
		FieldEmail:     "Email is required",
	}, verr.Fields)
	assert.Equal(t, []string{"First Name is required", "Last Name is required", "Email is required"}, verr.Messages())
	assert.Equal(t, verr.Fields, c.Errors())
}

func TestNext_BlankCountsAsMissing(t *testing.T) {
	c := newResumeController(t)
	fillRequired(c)
	c.SetValue(FieldEmail, "   \t")

	_, err := c.Next()
	require.Error(t, err)
	assert.Equal(t, map[string]string{FieldEmail: "Email is required"}, c.Errors())
	assert.Equal(t, 0, c.StepIndex())
}

func TestNext_OptionalFieldsDoNotBlock(t *testing.T) {
	c := newResumeController(t)
	fillRequired(c)

	action, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionAdvance, action)
	assert.Equal(t, 1, c.StepIndex())
	assert.Empty(t, c.Errors())
}

func TestNext_BlockedIffRequiredFieldEmpty(t *testing.T) {
	steps := ResumeSteps()
	for i, step := range steps {
		for _, field := range step.Fields {
			if !field.Required {
				continue
			}
			t.Run(step.Title+"/"+field.ID, func(t *testing.T) {
				c := newResumeController(t)
				for j := 0; j < i; j++ {
					fillRequired(c)
					_, err := c.Next()
					require.NoError(t, err)
				}
				fillRequired(c)
				c.SetValue(field.ID, "")

				action, err := c.Next()
				require.Error(t, err)
				assert.Equal(t, ActionNone, action)
				assert.Equal(t, i, c.StepIndex())
				assert.Equal(t, map[string]string{field.ID: field.Label + " is required"}, c.Errors())
			})
		}
	}
}

func TestNext_SubmitOnLastStep(t *testing.T) {
	c := newResumeController(t)
	for !c.IsLastStep() {
		fillRequired(c)
		action, err := c.Next()
		require.NoError(t, err)
		require.Equal(t, ActionAdvance, action)
	}

	// Leadership has no required fields.
	action, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionSubmit, action)
	assert.Equal(t, c.StepCount()-1, c.StepIndex(), "submit does not move past the last step")
	assert.Equal(t, "8/8", c.Progress())
}

func TestNext_DoesNotRevalidatePreviousSteps(t *testing.T) {
	c := newResumeController(t)
	fillRequired(c)
	_, err := c.Next()
	require.NoError(t, err)

	// Clearing a field of step one must not block step two.
	c.SetValue(FieldFirstName, "")
	fillRequired(c)
	action, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionAdvance, action)
}

func TestSetValue_ClearsFieldError(t *testing.T) {
	c := newResumeController(t)
	_, err := c.Next()
	require.Error(t, err)
	require.Len(t, c.Errors(), 3)

	c.SetValue(FieldFirstName, "Ada")
	errs := c.Errors()
	assert.Len(t, errs, 2)
	assert.NotContains(t, errs, FieldFirstName)
}

func TestBack_ExitsFromFirstStep(t *testing.T) {
	c := newResumeController(t)

	action, err := c.Back()
	require.NoError(t, err)
	assert.Equal(t, ActionExit, action)
	assert.True(t, c.Exited())
	assert.Equal(t, 0, c.StepIndex())
}

func TestBack_KeepsEnteredValues(t *testing.T) {
	c := newResumeController(t)
	c.SetValue(FieldFirstName, "Ada")
	c.SetValue(FieldLastName, "Lovelace")
	c.SetValue(FieldEmail, "ada@example.com")
	_, err := c.Next()
	require.NoError(t, err)

	c.SetValue(FieldObjective, "Engines")
	_, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, "3/8", c.Progress())

	action, err := c.Back()
	require.NoError(t, err)
	assert.Equal(t, ActionBack, action)
	assert.Equal(t, 1, c.StepIndex())
	assert.False(t, c.Exited())
	assert.Equal(t, "Engines", c.Value(FieldObjective))
	assert.Equal(t, "Ada", c.Value(FieldFirstName))
}

func TestSubmitGuard(t *testing.T) {
	c := newResumeController(t)
	require.NoError(t, c.BeginSubmit())
	assert.True(t, c.Submitting())
	assert.ErrorIs(t, c.BeginSubmit(), ErrSubmitInProgress)

	_, err := c.Next()
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	_, err = c.Back()
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	c.EndSubmit()
	assert.False(t, c.Submitting())
	_, err = c.Back()
	assert.NoError(t, err)
}

func TestReset(t *testing.T) {
	c := newResumeController(t)
	fillRequired(c)
	_, err := c.Next()
	require.NoError(t, err)

	c.Reset()
	assert.Equal(t, 0, c.StepIndex())
	assert.Empty(t, c.Data())
	assert.Empty(t, c.Errors())
}

func TestData_ReturnsCopy(t *testing.T) {
	c := newResumeController(t)
	c.SetValue(FieldFirstName, "Ada")

	data := c.Data()
	data[FieldFirstName] = "changed"
	assert.Equal(t, "Ada", c.Value(FieldFirstName))
}

func TestPrefill(t *testing.T) {
	c := newResumeController(t)
	c.Prefill(FormData{FieldFirstName: "Ada", FieldLastName: "Lovelace", FieldEmail: "a@b.c"})

	action, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionAdvance, action)
}

func TestValidationError_Message(t *testing.T) {
	c := newResumeController(t)
	_, err := c.Next()
	require.Error(t, err)
	assert.Equal(t,
		`validation failed for step "Personal Details": First Name is required; Last Name is required; Email is required`,
		err.Error())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "advance", ActionAdvance.String())
	assert.Equal(t, "submit", ActionSubmit.String())
	assert.Equal(t, "back", ActionBack.String())
	assert.Equal(t, "exit", ActionExit.String())
	assert.Equal(t, "none", ActionNone.String())
}
