// Package pipeline runs one inbound free-text message through its full
// life: resolve the user, enforce the daily quota, frame the prompt with
// the selected persona, call the completion backend, send exactly one
// reply, and commit the counter.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidalabs/aida-bot/internal/completion"
	"github.com/aidalabs/aida-bot/internal/lib/keylock"
	"github.com/aidalabs/aida-bot/internal/lib/sl"
	"github.com/aidalabs/aida-bot/internal/messages"
	"github.com/aidalabs/aida-bot/internal/persona"
	"github.com/aidalabs/aida-bot/internal/quota"
	"github.com/aidalabs/aida-bot/types"
)

// Sender delivers the single outbound reply for a processed message.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type Pipeline struct {
	store      types.UserStore
	policy     quota.Policy
	completion completion.Client
	sender     Sender
	locks      keylock.KeyLock
	now        func() time.Time
	log        *slog.Logger
}

func New(store types.UserStore, policy quota.Policy, client completion.Client, sender Sender, log *slog.Logger) *Pipeline {
	return &Pipeline{
		store:      store,
		policy:     policy,
		completion: client,
		sender:     sender,
		now:        time.Now,
		log:        log,
	}
}

// WithClock replaces the time source. Tests use it to pin the quota window.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Process handles one inbound text message end to end. Every path sends
// exactly one reply; Process itself never returns an error because by the
// time something fails the user has already been answered with a fixed
// notice.
func (p *Pipeline) Process(ctx context.Context, userID, chatID int64, text string) {
	log := p.log.With(
		slog.String("message_id", uuid.NewString()),
		slog.Int64("user_id", userID),
	)

	text = strings.TrimSpace(text)

	// The record read, the quota decision and its commit form one
	// critical section per user: overlapping messages from the same user
	// serialize here, so the last free slot cannot be taken twice.
	unlock := p.locks.Lock(userID)
	defer unlock()

	u, err := p.store.GetOrCreate(ctx, userID)
	if err != nil {
		log.Error("user resolution failed", sl.Err(err))
		p.send(ctx, log, chatID, messages.ErrorStorage())
		return
	}

	// The date is captured once here. A request that crosses midnight
	// commits against the date it was decided on.
	today := p.now().Format(types.DateLayout)
	decision := p.policy.Decide(*u, today)
	if !decision.Allowed {
		log.Info("message denied by quota", slog.Int("messages_count", u.MessagesCount))
		p.send(ctx, log, chatID, messages.QuotaExceeded())
		return
	}

	prompt := persona.Resolve(u.SelectedBot) + text

	reply, err := p.completion.Complete(ctx, prompt)
	if err != nil {
		// A failed attempt still consumes a message of the day: the
		// quota limits attempts, not successes.
		log.Error("completion failed", sl.Err(err))
		reply = messages.ErrorAI()
	}

	p.send(ctx, log, chatID, reply)

	// Best-effort persistence: the reply is already out, so a failed
	// commit is logged and not retried.
	if err := p.store.ApplyQuotaCommit(ctx, userID, decision.Commit); err != nil {
		log.Error("quota commit failed after reply", sl.Err(err))
	}
}

func (p *Pipeline) send(ctx context.Context, log *slog.Logger, chatID int64, text string) {
	if err := p.sender.Send(ctx, chatID, text); err != nil {
		log.Error("sending reply failed", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}
