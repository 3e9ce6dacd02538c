package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegistration_SnapshotsQuestions(t *testing.T) {
	questions := []Question{{ID: 1, Text: "Email?"}, {ID: 2, Text: "City?"}}

	reg := NewRegistration(7, questions)
	questions[0].Text = "changed"

	assert.Equal(t, "Email?", reg.Questions[0].Text)
	assert.Equal(t, RegistrationNotStarted, reg.State)
	assert.Equal(t, int64(7), reg.UserID)
}

func TestRegistration_Remaining(t *testing.T) {
	questions := []Question{{ID: 1}, {ID: 2}, {ID: 3}}

	tests := []struct {
		name     string
		state    RegistrationState
		index    int
		expected int
	}{
		{
			name:     "not started consumes one extra message",
			state:    RegistrationNotStarted,
			expected: 4,
		},
		{
			name:     "in progress at first question",
			state:    RegistrationInProgress,
			index:    0,
			expected: 3,
		},
		{
			name:     "in progress at last question",
			state:    RegistrationInProgress,
			index:    2,
			expected: 1,
		},
		{
			name:     "finished",
			state:    RegistrationFinished,
			index:    3,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistration(1, questions)
			reg.State = tt.state
			reg.Index = tt.index
			assert.Equal(t, tt.expected, reg.Remaining())
		})
	}
}

func TestRegistration_Current(t *testing.T) {
	reg := NewRegistration(1, []Question{{ID: 10, Text: "Email?"}})

	_, ok := reg.Current()
	assert.False(t, ok, "not started run has no current question")

	reg.State = RegistrationInProgress
	q, ok := reg.Current()
	assert.True(t, ok)
	assert.Equal(t, int64(10), q.ID)

	reg.Index = 1
	_, ok = reg.Current()
	assert.False(t, ok)
}

func TestMenuNode_IsAttendance(t *testing.T) {
	dept := int64(3)

	assert.True(t, MenuNode{IsAttendment: true, DepartmentID: &dept}.IsAttendance())
	assert.False(t, MenuNode{IsAttendment: true}.IsAttendance())
	assert.False(t, MenuNode{DepartmentID: &dept}.IsAttendance())
}

func TestUser_DisplayName(t *testing.T) {
	name := "Ana"
	empty := ""

	assert.Equal(t, "Ana", (&User{ChatID: "55", Name: &name}).DisplayName())
	assert.Equal(t, "55", (&User{ChatID: "55", Name: &empty}).DisplayName())
	assert.Equal(t, "55", (&User{ChatID: "55"}).DisplayName())
}
