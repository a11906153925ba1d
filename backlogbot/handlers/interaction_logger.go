package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
)

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h interactions.Handler) interactions.Handler {
	return wrap("cmd", "Command", name, config.InteractionTimeout, h)
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h interactions.Handler) interactions.Handler {
	return wrap("component", "Component interaction", name, config.InteractionTimeout, h)
}

func wrap(logType, label, name string, timeout time.Duration, h interactions.Handler) interactions.Handler {
	return func(ctx context.Context, i interactions.Interaction) error {
		start := time.Now()
		user := i.User()

		slog.Info(label+" started",
			slog.String("type", logType),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
		)

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- h(ctx, i)
		}()

		select {
		case err := <-done:
			duration := time.Since(start)
			attrs := []any{
				slog.String("type", logType),
				slog.String("name", name),
				slog.String("user_id", user.ID.String()),
				slog.String("user_name", user.Username),
				slog.Duration("took", duration),
			}

			switch {
			case err != nil:
				slog.Error(label+" failed", append(attrs,
					slog.Any("error", err),
					slog.String("status", "failed"),
				)...)
			case duration > config.SlowInteraction:
				slog.Warn(label+" executed slowly", append(attrs,
					slog.String("status", "slow"),
				)...)
			default:
				slog.Info(label+" completed", append(attrs,
					slog.String("status", "success"),
				)...)
			}
			return err

		case <-ctx.Done():
			slog.Error(label+" timed out",
				slog.String("type", logType),
				slog.String("name", name),
				slog.String("user_id", user.ID.String()),
				slog.String("user_name", user.Username),
				slog.String("status", "timeout"),
				slog.Duration("timeout", timeout),
			)
			return fmt.Errorf("%s %s timed out after %s: %w", logType, name, timeout, ctx.Err())
		}
	}
}
