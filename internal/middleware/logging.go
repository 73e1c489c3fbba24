package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates a middleware logging every processed update
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			var userID int64
			if c.Sender() != nil {
				userID = c.Sender().ID
			}

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.Duration("took", time.Since(start)),
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback", cb.Unique))
			} else if c.Message() != nil {
				fields = append(fields, zap.String("kind", "message"))
			}

			if err != nil {
				logger.Warn("Update finished with error", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("Update processed", fields...)
			}
			return err
		}
	}
}

// Recover creates a middleware converting handler panics into logged errors
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panicked", zap.Any("panic", r))
				}
			}()
			return next(c)
		}
	}
}
