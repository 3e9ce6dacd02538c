package repository

import (
	"context"

	"menubot/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	GetOne(ctx context.Context, chatID string, robotID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, chatID string, robotID int64, fields domain.UserFields) error
	SaveCurrentMenu(ctx context.Context, user *domain.User, menuID *int64) error
}

// MenuRepository defines menu tree operations
type MenuRepository interface {
	GetByChildren(ctx context.Context, parentID *int64, robotID int64) ([]domain.MenuNode, error)
	GetByID(ctx context.Context, menuID, robotID int64) (*domain.MenuNode, error)
}

// QuestionRepository defines onboarding question operations
type QuestionRepository interface {
	OutstandingQuestions(ctx context.Context, robotID, userID int64) ([]domain.Question, error)
	SaveAnswer(ctx context.Context, userID, questionID int64, answer string) error
}

// AttendanceRepository defines human attendance operations
type AttendanceRepository interface {
	GetAttendance(ctx context.Context, userID int64) (*domain.Attendance, error)
	Open(ctx context.Context, attendance *domain.Attendance) error
	CloseForUser(ctx context.Context, userID int64) (int64, error)
	AttendantChat(ctx context.Context, departmentID int64) (string, error)
}
