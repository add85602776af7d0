package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidalabs/aida-bot/internal/contextkeys"
)

func textUpdate(userID, chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: chatID},
			Text: text,
		},
	}
}

func capture(called *bool, gotCtx *context.Context) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		*called = true
		*gotCtx = ctx
	}
}

func TestExtractIdentityMiddleware(t *testing.T) {
	m := NewMessageAnalyzer()

	var called bool
	var gotCtx context.Context
	h := m.ExtractIdentityMiddleware(capture(&called, &gotCtx))

	h(context.Background(), nil, textUpdate(7, 9, "hola"))
	require.True(t, called)

	userID, ok := contextkeys.GetUserID(gotCtx)
	require.True(t, ok)
	assert.Equal(t, int64(7), userID)

	chatID, ok := contextkeys.GetChatID(gotCtx)
	require.True(t, ok)
	assert.Equal(t, int64(9), chatID)
}

func TestExtractIdentityMiddleware_DropsAnonymousUpdates(t *testing.T) {
	m := NewMessageAnalyzer()

	var called bool
	var gotCtx context.Context
	h := m.ExtractIdentityMiddleware(capture(&called, &gotCtx))

	h(context.Background(), nil, &models.Update{})
	assert.False(t, called)

	h(context.Background(), nil, &models.Update{Message: &models.Message{Chat: models.Chat{ID: 9}}})
	assert.False(t, called)
}

func TestAnalyzeMessageMiddleware(t *testing.T) {
	m := NewMessageAnalyzer()

	tests := []struct {
		name     string
		text     string
		wantType contextkeys.MessageType
		wantDrop bool
	}{
		{"free text", "hola", contextkeys.MessageTypeText, false},
		{"command", "/start", contextkeys.MessageTypeCommand, false},
		{"command with args", "/subscribe monthly", contextkeys.MessageTypeCommand, false},
		{"no text is dropped", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotCtx context.Context
			h := m.AnalyzeMessageMiddleware(capture(&called, &gotCtx))

			h(context.Background(), nil, textUpdate(1, 2, tt.text))

			if tt.wantDrop {
				assert.False(t, called)
				return
			}
			require.True(t, called)
			msgType, ok := contextkeys.GetMessageType(gotCtx)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, msgType)
		})
	}
}
