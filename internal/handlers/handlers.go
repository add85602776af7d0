package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aidalabs/aida-bot/internal/contextkeys"
	"github.com/aidalabs/aida-bot/internal/lib/sl"
	"github.com/aidalabs/aida-bot/internal/pipeline"
	"github.com/aidalabs/aida-bot/types"
)

type Handlers struct {
	store types.UserStore
	pipe  *pipeline.Pipeline
	log   *slog.Logger
}

func NewHandlers(store types.UserStore, pipe *pipeline.Pipeline, log *slog.Logger) *Handlers {
	return &Handlers{
		store: store,
		pipe:  pipe,
		log:   log,
	}
}

// MainHandler routes classified updates: commands to the command handler,
// free text into the message pipeline.
func (bh *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID, ok := contextkeys.GetUserID(ctx)
	if !ok {
		return
	}
	chatID, ok := contextkeys.GetChatID(ctx)
	if !ok {
		return
	}

	msgType, _ := contextkeys.GetMessageType(ctx)
	switch msgType {
	case contextkeys.MessageTypeCommand:
		bh.HandleCommand(ctx, b, update, userID, chatID)
	case contextkeys.MessageTypeText:
		bh.pipe.Process(ctx, userID, chatID, update.Message.Text)
	}
}

// TelegramSender adapts *bot.Bot to the pipeline's Sender.
type TelegramSender struct {
	Bot *bot.Bot
}

func (s *TelegramSender) Send(ctx context.Context, chatID int64, text string) error {
	_, err := s.Bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (bh *Handlers) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		bh.log.Error("sending message failed", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}
