package service

import (
	"context"
	"fmt"

	"menubot/internal/domain"
	"menubot/internal/repository"

	"go.uber.org/zap"
)

// AttendanceService manages attendances from the operator side
type AttendanceService struct {
	robotID     int64
	users       repository.UserRepository
	attendances repository.AttendanceRepository
	logger      *zap.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	robotID int64,
	users repository.UserRepository,
	attendances repository.AttendanceRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		robotID:     robotID,
		users:       users,
		attendances: attendances,
		logger:      logger,
	}
}

// Close ends every open attendance of the user behind chatID.
// The user is handed back to the menu on their next message.
func (s *AttendanceService) Close(ctx context.Context, chatID string) (int64, error) {
	user, err := s.users.GetOne(ctx, chatID, s.robotID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, domain.ErrUserNotFound
	}

	closed, err := s.attendances.CloseForUser(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to close attendance: %w", err)
	}

	s.logger.Info("Attendance closed",
		zap.String("chat_id", chatID),
		zap.Int64("user_id", user.ID),
		zap.Int64("closed", closed),
	)
	return closed, nil
}
