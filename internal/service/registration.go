package service

import (
	"context"
	"fmt"

	"menubot/internal/domain"
	"menubot/internal/repository"
	"menubot/internal/session"

	"go.uber.org/zap"
)

// RegistrationService walks a user through the robot's onboarding questions
type RegistrationService struct {
	questions repository.QuestionRepository
	registry  *session.Registry
	sender    Sender
	logger    *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	questions repository.QuestionRepository,
	registry *session.Registry,
	sender Sender,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		questions: questions,
		registry:  registry,
		sender:    sender,
		logger:    logger,
	}
}

// Initialize snapshots the user's outstanding questions into a new run.
// An existing run is returned untouched; nil means there is nothing to ask.
func (s *RegistrationService) Initialize(ctx context.Context, user *domain.User) (*domain.Registration, error) {
	if reg, ok := s.registry.RegistrationFor(user.ID); ok {
		return reg, nil
	}

	questions, err := s.questions.OutstandingQuestions(ctx, user.RobotID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil
	}

	reg := domain.NewRegistration(user.ID, questions)
	s.registry.UpsertRegistration(reg)

	s.logger.Info("Registration started",
		zap.Int64("user_id", user.ID),
		zap.Int("questions", len(questions)),
	)
	return reg, nil
}

// Advance consumes one message. The first message of a run only starts it;
// every later one answers the current question.
func (s *RegistrationService) Advance(ctx context.Context, reg *domain.Registration, msg domain.InboundMessage, user *domain.User) (domain.RegistrationStatus, error) {
	switch reg.State {
	case domain.RegistrationNotStarted:
		reg.State = domain.RegistrationInProgress
		reg.Index = 0

	case domain.RegistrationInProgress:
		q, ok := reg.Current()
		if !ok {
			reg.State = domain.RegistrationFinished
			return domain.RegistrationFinish, nil
		}
		if err := s.questions.SaveAnswer(ctx, user.ID, q.ID, msg.Text); err != nil {
			return "", fmt.Errorf("failed to save answer: %w", err)
		}
		reg.Index++

	default:
		return domain.RegistrationFinish, nil
	}

	next, ok := reg.Current()
	if !ok {
		reg.State = domain.RegistrationFinished
		s.logger.Info("Registration finished", zap.Int64("user_id", user.ID))
		return domain.RegistrationFinish, nil
	}

	if err := s.sender.Send(ctx, user.ChatID, domain.Reply{Message: next.Text}); err != nil {
		return "", err
	}
	return domain.RegistrationContinue, nil
}

// Process runs the registration step of the pipeline for one message.
// A run created by this message is advanced by it as well.
func (s *RegistrationService) Process(ctx context.Context, user *domain.User, msg domain.InboundMessage) error {
	reg, err := s.Initialize(ctx, user)
	if err != nil {
		return err
	}
	if reg == nil {
		return nil
	}

	status, err := s.Advance(ctx, reg, msg, user)
	if err != nil {
		return err
	}
	if status == domain.RegistrationFinish {
		s.registry.RemoveRegistration(user.ID)
	}
	return nil
}
