package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aidalabs/aida-bot/internal/lib/sl"
	"github.com/aidalabs/aida-bot/internal/messages"
)

func (bh *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, update *models.Update, userID, chatID int64) {
	fields := strings.Fields(strings.TrimSpace(update.Message.Text))
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}

	switch cmd {
	case "/start":
		// First contact creates the record; onboarding flags are filled
		// in by the onboarding flow later.
		if _, err := bh.store.GetOrCreate(ctx, userID); err != nil {
			bh.log.Error("creating user on /start failed", sl.Err(err))
			bh.reply(ctx, b, chatID, messages.ErrorStorage())
			return
		}
		bh.reply(ctx, b, chatID, messages.StartWelcome())
	case "/help":
		bh.reply(ctx, b, chatID, messages.Help())
	case "/subscribe":
		subscribed := false
		if u, err := bh.store.GetOrCreate(ctx, userID); err == nil {
			subscribed = u.IsSubscribed
		} else {
			bh.log.Error("reading user on /subscribe failed", sl.Err(err))
		}
		bh.reply(ctx, b, chatID, messages.SubscribeInfo(subscribed))
	default:
		bh.reply(ctx, b, chatID, messages.ErrorUnknownCommand())
	}
}
