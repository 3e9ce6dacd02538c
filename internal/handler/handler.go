package handler

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"

	"menubot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError = "Ocorreu um erro. Tente novamente mais tarde."

	handleTimeout = 30 * time.Second
)

// Dispatcher runs an inbound message through the conversation pipeline
type Dispatcher interface {
	Handle(ctx context.Context, msg domain.InboundMessage) (domain.Outcome, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot              *tele.Bot
	dispatcher       Dispatcher
	trustProfileName bool
	logger           *zap.Logger
}

// NewHandler creates a new handler instance.
// With trustProfileName the sender's Telegram name is taken as their display name.
func NewHandler(bot *tele.Bot, dispatcher Dispatcher, trustProfileName bool, logger *zap.Logger) *Handler {
	return &Handler{
		bot:              bot,
		dispatcher:       dispatcher,
		trustProfileName: trustProfileName,
		logger:           logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleText)
	h.bot.Handle(tele.OnText, h.handleText)
}

// handleText feeds every text message to the dispatcher
func (h *Handler) handleText(c tele.Context) error {
	if c.Chat() == nil {
		return nil
	}

	msg := inboundMessage(c.Chat(), c.Sender(), c.Text(), h.trustProfileName)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := h.dispatch(ctx, msg); err != nil {
		return c.Send(msgError)
	}
	return nil
}

func (h *Handler) dispatch(ctx context.Context, msg domain.InboundMessage) error {
	outcome, err := h.dispatcher.Handle(ctx, msg)
	if err != nil {
		h.logger.Error("Failed to handle message",
			zap.String("chat_id", msg.ChatID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("Message dispatched",
		zap.String("chat_id", msg.ChatID),
		zap.String("outcome", string(outcome)),
	)
	return nil
}

func inboundMessage(chat *tele.Chat, sender *tele.User, text string, trustProfileName bool) domain.InboundMessage {
	msg := domain.InboundMessage{
		ChatID: strconv.FormatInt(chat.ID, 10),
		Text:   cleanText(text),
	}
	if trustProfileName && sender != nil {
		msg.Name = cleanText(strings.TrimSpace(sender.FirstName + " " + sender.LastName))
	}
	return msg
}

// cleanText folds line breaks into spaces and drops other non-printable characters
func cleanText(text string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsPrint(r):
			return r
		default:
			return -1
		}
	}, text))
}
