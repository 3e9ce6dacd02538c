package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"menubot/internal/domain"
	"menubot/internal/menu"
	"menubot/internal/metrics"
	"menubot/internal/repository"
	"menubot/internal/session"

	"go.uber.org/zap"
)

const (
	msgAskName       = "Diga seu nome"
	msgInvalidName   = "Por favor, informe seu nome corretamente"
	msgInvalidOption = "Opção inválida"

	maxNameLength = 30
)

// HandoffQueue debounces handoff requests per user
type HandoffQueue interface {
	TryEnqueue(ctx context.Context, userID int64) (bool, error)
	IsEnqueued(ctx context.Context, userID int64) (bool, error)
}

// HandoffChannel delivers users to and from human attendants
type HandoffChannel interface {
	Open(ctx context.Context, menu domain.MenuNode, req domain.HandoffRequest, departmentID int64) error
	Forward(ctx context.Context, msg domain.InboundMessage, user domain.User, attendance *domain.Attendance) error
}

// Dependencies wires the collaborators of a Dispatcher
type Dependencies struct {
	RobotID      int64
	Users        repository.UserRepository
	Attendances  repository.AttendanceRepository
	Navigator    *menu.Navigator
	Registration *RegistrationService
	Registry     *session.Registry
	Locker       *session.Locker
	Queue        HandoffQueue
	Handoff      HandoffChannel
	Sender       Sender
	Recorder     *metrics.Recorder
	Logger       *zap.Logger
}

// Dispatcher runs every inbound message through the conversation pipeline
type Dispatcher struct {
	robotID      int64
	users        repository.UserRepository
	attendances  repository.AttendanceRepository
	navigator    *menu.Navigator
	registration *RegistrationService
	registry     *session.Registry
	locker       *session.Locker
	queue        HandoffQueue
	handoff      HandoffChannel
	sender       Sender
	presenter    *MenuPresenter
	recorder     *metrics.Recorder
	logger       *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(deps Dependencies) *Dispatcher {
	locker := deps.Locker
	if locker == nil {
		locker = session.NewLocker()
	}
	registry := deps.Registry
	if registry == nil {
		registry = session.NewRegistry()
	}
	return &Dispatcher{
		robotID:      deps.RobotID,
		users:        deps.Users,
		attendances:  deps.Attendances,
		navigator:    deps.Navigator,
		registration: deps.Registration,
		registry:     registry,
		locker:       locker,
		queue:        deps.Queue,
		handoff:      deps.Handoff,
		sender:       deps.Sender,
		presenter:    NewMenuPresenter(deps.Sender),
		recorder:     deps.Recorder,
		logger:       deps.Logger,
	}
}

// Handle processes one inbound message. Messages of the same conversation
// are serialized.
func (d *Dispatcher) Handle(ctx context.Context, msg domain.InboundMessage) (domain.Outcome, error) {
	start := time.Now()
	key := domain.SessionKey{ChatID: msg.ChatID, RobotID: d.robotID}
	msg.Text = strings.TrimSpace(msg.Text)

	var outcome domain.Outcome
	err := d.locker.WithLock(ctx, key, func(ctx context.Context) error {
		var err error
		outcome, err = d.process(ctx, key, msg)
		return err
	})
	d.recorder.ObserveMessage(outcome, err, time.Since(start))
	if err != nil {
		return outcome, fmt.Errorf("failed to handle message from %s: %w", key, err)
	}

	d.logger.Debug("Message handled",
		zap.String("session", key.String()),
		zap.String("outcome", string(outcome)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return outcome, nil
}

func (d *Dispatcher) process(ctx context.Context, key domain.SessionKey, msg domain.InboundMessage) (domain.Outcome, error) {
	user, err := d.ensureUser(ctx, key)
	if err != nil {
		return "", err
	}

	awaiting := d.registry.IsAwaitingName(key)
	if awaiting {
		if !ValidName(msg.Text) {
			return domain.OutcomeNameInvalid, d.reply(ctx, msg.ChatID, msgInvalidName)
		}
		if err := d.saveName(ctx, user, msg.Text); err != nil {
			return "", err
		}
		d.registry.SetAwaitingName(key, false)
	}

	if !user.HasName() {
		name := strings.TrimSpace(msg.Name)
		if name == "" {
			d.registry.SetAwaitingName(key, true)
			return domain.OutcomeNamePrompt, d.reply(ctx, msg.ChatID, msgAskName)
		}
		if err := d.saveName(ctx, user, name); err != nil {
			return "", err
		}
	}

	if err := d.registration.Process(ctx, user, msg); err != nil {
		return "", err
	}

	attendance, err := d.attendances.GetAttendance(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get attendance: %w", err)
	}
	pending := false
	if attendance == nil {
		pending, err = d.queue.IsEnqueued(ctx, user.ID)
		if err != nil {
			return "", fmt.Errorf("failed to check handoff queue: %w", err)
		}
	}
	if attendance != nil || pending {
		return domain.OutcomeHandoffForwarded, d.handoff.Forward(ctx, msg, *user, attendance)
	}

	if menu.IsResetCode(msg.Text) {
		if err := d.users.SaveCurrentMenu(ctx, user, nil); err != nil {
			return "", fmt.Errorf("failed to reset menu: %w", err)
		}
		user.CurrentMenuID = nil
	}

	children, err := d.navigator.ChildrenOf(ctx, user.CurrentMenuID, d.robotID)
	if err != nil {
		return "", err
	}

	if !menu.IsSelection(msg.Text) {
		return domain.OutcomeMenuHome, d.presenter.SendCurrent(ctx, user, children)
	}

	node, ok := menu.ResolveMatch(children, msg.Text)
	if !ok {
		return domain.OutcomeInvalidOption, d.reply(ctx, msg.ChatID, msgInvalidOption)
	}

	if node.IsAttendance() {
		return d.openHandoff(ctx, msg, user, node)
	}

	if err := d.users.SaveCurrentMenu(ctx, user, &node.ID); err != nil {
		return "", fmt.Errorf("failed to save current menu: %w", err)
	}
	user.CurrentMenuID = &node.ID

	next, err := d.navigator.ChildrenOf(ctx, &node.ID, d.robotID)
	if err != nil {
		return "", err
	}
	return domain.OutcomeMenuNext, d.presenter.SendNext(ctx, user, *node, next)
}

func (d *Dispatcher) openHandoff(ctx context.Context, msg domain.InboundMessage, user *domain.User, node *domain.MenuNode) (domain.Outcome, error) {
	enqueued, err := d.queue.TryEnqueue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue handoff: %w", err)
	}
	if !enqueued {
		d.logger.Info("Handoff already pending",
			zap.Int64("user_id", user.ID),
			zap.Int64("menu_id", node.ID),
		)
		return domain.OutcomeHandoffSuppressed, nil
	}

	full, err := d.navigator.Node(ctx, node.ID, d.robotID)
	if err != nil {
		return "", err
	}

	req := domain.HandoffRequest{Event: msg, User: *user}
	if err := d.handoff.Open(ctx, *full, req, *node.DepartmentID); err != nil {
		return "", fmt.Errorf("failed to open handoff: %w", err)
	}
	return domain.OutcomeHandoffOpened, nil
}

func (d *Dispatcher) ensureUser(ctx context.Context, key domain.SessionKey) (*domain.User, error) {
	user, err := d.users.GetOne(ctx, key.ChatID, key.RobotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	if err := d.users.Create(ctx, &domain.User{ChatID: key.ChatID, RobotID: key.RobotID}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err = d.users.GetOne(ctx, key.ChatID, key.RobotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	d.logger.Info("User created", zap.String("session", key.String()), zap.Int64("user_id", user.ID))
	return user, nil
}

func (d *Dispatcher) saveName(ctx context.Context, user *domain.User, name string) error {
	if err := d.users.Update(ctx, user.ChatID, user.RobotID, domain.UserFields{Name: &name}); err != nil {
		return fmt.Errorf("failed to save name: %w", err)
	}
	user.Name = &name
	return nil
}

func (d *Dispatcher) reply(ctx context.Context, chatID, text string) error {
	return d.sender.Send(ctx, chatID, domain.Reply{Message: text})
}

// ValidName reports whether text is acceptable as a display name
func ValidName(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || menu.IsNumeric(text) || strings.HasPrefix(text, "/") {
		return false
	}
	return utf8.RuneCountInString(text) < maxNameLength
}
