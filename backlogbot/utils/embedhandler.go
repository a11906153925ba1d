package utils

import (
	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/disgoorg/disgo/discord"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - User input issues, validation failures, parameter problems
	UserError ErrorType = iota
	// SystemError - Database failures, network issues, upstream outages
	SystemError
	// NotFoundError - Requested resources don't exist
	NotFoundError
	// BusinessLogicError - Duplicates and other rule violations
	BusinessLogicError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// ClassifiedError builds an ephemeral error message. Every error reply in the
// bot goes through here.
func (h *ResponseHandler) ClassifiedError(errorType ErrorType, message string) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: getErrorPrefix(errorType) + " " + message,
			Color:       getErrorColor(errorType),
		}},
		Flags: discord.MessageFlagEphemeral,
	}
}

// CreateClassifiedError sends an error response with automatic styling
func (h *ResponseHandler) CreateClassifiedError(i interactions.Interaction, errorType ErrorType, message string) error {
	return i.CreateMessage(h.ClassifiedError(errorType, message))
}

// CreateUserError creates an error response for user input issues
func (h *ResponseHandler) CreateUserError(i interactions.Interaction, message string) error {
	return h.CreateClassifiedError(i, UserError, message)
}

// CreateSystemError creates an error response for system/technical failures
func (h *ResponseHandler) CreateSystemError(i interactions.Interaction, message string) error {
	return h.CreateClassifiedError(i, SystemError, message)
}

// CreateNotFoundError creates an error response for resources that don't exist
func (h *ResponseHandler) CreateNotFoundError(i interactions.Interaction, message string) error {
	return h.CreateClassifiedError(i, NotFoundError, message)
}

func (h *ResponseHandler) CreateBusinessLogicError(i interactions.Interaction, message string) error {
	return h.CreateClassifiedError(i, BusinessLogicError, message)
}

// CreateSuccessEmbed creates a standard success embed
func (h *ResponseHandler) CreateSuccessEmbed(i interactions.Interaction, message string, ephemeral bool) error {
	return i.CreateMessage(embedMessage(message, config.SuccessColor, ephemeral))
}

// CreateInfoEmbed creates a standard info embed
func (h *ResponseHandler) CreateInfoEmbed(i interactions.Interaction, message string, ephemeral bool) error {
	return i.CreateMessage(embedMessage(message, config.InfoColor, ephemeral))
}

func embedMessage(message string, color int, ephemeral bool) discord.MessageCreate {
	msg := discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       color,
		}},
	}
	if ephemeral {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return msg
}
