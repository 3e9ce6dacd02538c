package handoff

import (
	"context"
	"fmt"
	"time"

	"menubot/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgTransferring = "Aguarde, você será atendido por um de nossos atendentes."
	msgStillWaiting = "Aguarde, estamos transferindo você para um atendente."
)

// Notifier delivers a text message to a chat
type Notifier interface {
	Send(ctx context.Context, chatID string, reply domain.Reply) error
}

// AttendanceStore records attendances and knows where each department listens
type AttendanceStore interface {
	Open(ctx context.Context, attendance *domain.Attendance) error
	AttendantChat(ctx context.Context, departmentID int64) (string, error)
}

// Bridge opens human attendances and relays user messages to the attendants
type Bridge struct {
	store    AttendanceStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewBridge creates a new handoff bridge
func NewBridge(store AttendanceStore, notifier Notifier, logger *zap.Logger) *Bridge {
	return &Bridge{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Open records a waiting attendance for the menu's department and tells both sides
func (b *Bridge) Open(ctx context.Context, menu domain.MenuNode, req domain.HandoffRequest, departmentID int64) error {
	attendance := &domain.Attendance{
		ID:           b.newID(),
		UserID:       req.User.ID,
		DepartmentID: departmentID,
		MenuID:       menu.ID,
		Status:       domain.AttendanceWaiting,
		OpenedAt:     b.now(),
	}
	if err := b.store.Open(ctx, attendance); err != nil {
		return fmt.Errorf("failed to open attendance: %w", err)
	}

	b.logger.Info("Attendance opened",
		zap.String("attendance_id", attendance.ID),
		zap.Int64("user_id", req.User.ID),
		zap.Int64("department_id", departmentID),
		zap.Int64("menu_id", menu.ID),
	)

	chat, err := b.store.AttendantChat(ctx, departmentID)
	if err != nil {
		return fmt.Errorf("failed to find attendant chat: %w", err)
	}
	if chat != "" {
		notice := fmt.Sprintf("Novo atendimento %s\nCliente: %s\nAssunto: %s", attendance.ID, req.User.DisplayName(), menu.Title)
		if err := b.notifier.Send(ctx, chat, domain.Reply{Message: notice}); err != nil {
			return fmt.Errorf("failed to notify attendants: %w", err)
		}
	} else {
		b.logger.Warn("Department has no attendant chat", zap.Int64("department_id", departmentID))
	}

	return b.notifier.Send(ctx, req.User.ChatID, domain.Reply{Message: msgTransferring})
}

// Forward relays a user message to the attendants of the user's attendance.
// Without an attendance record the handoff is still pending and the user is asked to wait.
func (b *Bridge) Forward(ctx context.Context, msg domain.InboundMessage, user domain.User, attendance *domain.Attendance) error {
	if attendance == nil {
		return b.notifier.Send(ctx, msg.ChatID, domain.Reply{Message: msgStillWaiting})
	}

	chat, err := b.store.AttendantChat(ctx, attendance.DepartmentID)
	if err != nil {
		return fmt.Errorf("failed to find attendant chat: %w", err)
	}
	if chat == "" {
		b.logger.Warn("Dropping message for department without attendant chat",
			zap.String("attendance_id", attendance.ID),
			zap.Int64("department_id", attendance.DepartmentID),
		)
		return nil
	}

	text := fmt.Sprintf("[%s] %s: %s", attendance.ID, user.DisplayName(), msg.Text)
	return b.notifier.Send(ctx, chat, domain.Reply{Message: text})
}
