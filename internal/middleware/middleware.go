package middleware

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aidalabs/aida-bot/internal/contextkeys"
)

type Middlewares struct{}

func NewMessageAnalyzer() *Middlewares {
	return &Middlewares{}
}

// ExtractIdentityMiddleware pulls the user and chat ids off the update and
// drops updates that carry neither a sender nor a chat.
func (m *Middlewares) ExtractIdentityMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}
		userID := update.Message.From.ID
		chatID := update.Message.Chat.ID
		if userID == 0 || chatID == 0 {
			return
		}

		ctx = contextkeys.WithUserID(ctx, userID)
		ctx = contextkeys.WithChatID(ctx, chatID)
		next(ctx, b, update)
	}
}

// AnalyzeMessageMiddleware classifies the update as a command or free text.
// Only text messages make it past this point; media and other update kinds
// are not part of the chat surface and are dropped silently.
func (m *Middlewares) AnalyzeMessageMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.Text == "" {
			return
		}

		msgType := contextkeys.MessageTypeText
		if strings.HasPrefix(update.Message.Text, "/") {
			msgType = contextkeys.MessageTypeCommand
		}

		next(contextkeys.WithMessageType(ctx, msgType), b, update)
	}
}
