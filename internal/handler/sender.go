package handler

import (
	"context"
	"fmt"
	"strconv"

	"menubot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramSender delivers replies through the Telegram bot API
type TelegramSender struct {
	bot messageSender
}

// NewTelegramSender creates a sender on top of a bot
func NewTelegramSender(bot *tele.Bot) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// Send delivers reply to chatID
func (s *TelegramSender) Send(ctx context.Context, chatID string, reply domain.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}

	if _, err := s.bot.Send(tele.ChatID(id), reply.Message); err != nil {
		return fmt.Errorf("failed to send message to %s: %w", chatID, err)
	}
	return nil
}
