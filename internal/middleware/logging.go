package middleware

import (
	"time"

	"menubot/internal/metrics"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// LoggingMiddleware logs every update and records it in recorder
func LoggingMiddleware(recorder *metrics.Recorder, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)
			recorder.ObserveUpdate(err)

			fields := []zap.Field{
				zap.Duration("elapsed", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}

			if err != nil {
				logger.Error("Update failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}

// PrivateOnly drops updates that do not come from a private chat
func PrivateOnly(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if chat := c.Chat(); chat == nil || chat.Type != tele.ChatPrivate {
				logger.Debug("Ignoring non-private update")
				return nil
			}
			return next(c)
		}
	}
}
