package testutil

import (
	"context"

	"menubot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOne(ctx context.Context, chatID string, robotID int64) (*domain.User, error) {
	args := m.Called(ctx, chatID, robotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, chatID string, robotID int64, fields domain.UserFields) error {
	args := m.Called(ctx, chatID, robotID, fields)
	return args.Error(0)
}

func (m *MockUserRepository) SaveCurrentMenu(ctx context.Context, user *domain.User, menuID *int64) error {
	args := m.Called(ctx, user, menuID)
	return args.Error(0)
}

// MockMenuRepository is a mock for MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetByChildren(ctx context.Context, parentID *int64, robotID int64) ([]domain.MenuNode, error) {
	args := m.Called(ctx, parentID, robotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuNode), args.Error(1)
}

func (m *MockMenuRepository) GetByID(ctx context.Context, menuID, robotID int64) (*domain.MenuNode, error) {
	args := m.Called(ctx, menuID, robotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuNode), args.Error(1)
}

// MockQuestionRepository is a mock for QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) OutstandingQuestions(ctx context.Context, robotID, userID int64) ([]domain.Question, error) {
	args := m.Called(ctx, robotID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) SaveAnswer(ctx context.Context, userID, questionID int64, answer string) error {
	args := m.Called(ctx, userID, questionID, answer)
	return args.Error(0)
}

// MockAttendanceRepository is a mock for AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) GetAttendance(ctx context.Context, userID int64) (*domain.Attendance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Open(ctx context.Context, attendance *domain.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) CloseForUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttendanceRepository) AttendantChat(ctx context.Context, departmentID int64) (string, error) {
	args := m.Called(ctx, departmentID)
	return args.String(0), args.Error(1)
}

// MockSender is a mock for the outbound message sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, chatID string, reply domain.Reply) error {
	args := m.Called(ctx, chatID, reply)
	return args.Error(0)
}

// MockHandoffChannel is a mock for the human handoff channel
type MockHandoffChannel struct {
	mock.Mock
}

func (m *MockHandoffChannel) Open(ctx context.Context, menu domain.MenuNode, req domain.HandoffRequest, departmentID int64) error {
	args := m.Called(ctx, menu, req, departmentID)
	return args.Error(0)
}

func (m *MockHandoffChannel) Forward(ctx context.Context, msg domain.InboundMessage, user domain.User, attendance *domain.Attendance) error {
	args := m.Called(ctx, msg, user, attendance)
	return args.Error(0)
}
