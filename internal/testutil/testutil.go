package testutil

import (
	"time"

	"menubot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user; an empty name leaves it unset
func NewTestUser(id int64, chatID string, robotID int64, name string) *domain.User {
	u := &domain.User{
		ID:        id,
		ChatID:    chatID,
		RobotID:   robotID,
		CreatedAt: time.Now(),
	}
	if name != "" {
		u.Name = &name
	}
	return u
}

// NewTestMenu creates a plain menu node
func NewTestMenu(id int64, parentID *int64, code, title string) domain.MenuNode {
	return domain.MenuNode{
		ID:        id,
		RobotID:   1,
		ParentID:  parentID,
		OrderCode: code,
		Title:     title,
	}
}

// NewTestAttendanceMenu creates a menu node that hands off to a department
func NewTestAttendanceMenu(id int64, parentID *int64, code, title string, departmentID int64) domain.MenuNode {
	node := NewTestMenu(id, parentID, code, title)
	node.IsAttendment = true
	node.DepartmentID = &departmentID
	return node
}

// NewTestQuestions creates n ordered onboarding questions
func NewTestQuestions(robotID int64, texts ...string) []domain.Question {
	questions := make([]domain.Question, 0, len(texts))
	for i, text := range texts {
		questions = append(questions, domain.Question{
			ID:       int64(i + 1),
			RobotID:  robotID,
			Position: i + 1,
			Text:     text,
		})
	}
	return questions
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
