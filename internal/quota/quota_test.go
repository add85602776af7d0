package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidalabs/aida-bot/types"
)

const today = "2026-08-30"

func TestPolicy_Decide(t *testing.T) {
	p := NewPolicy(10)

	tests := []struct {
		name        string
		user        types.User
		wantAllowed bool
		wantReset   bool
	}{
		{
			name:        "fresh user with zero counter is allowed",
			user:        types.User{MessagesCount: 0, LastMessageDate: today},
			wantAllowed: true,
			wantReset:   false,
		},
		{
			name:        "under the limit today is allowed",
			user:        types.User{MessagesCount: 9, LastMessageDate: today},
			wantAllowed: true,
			wantReset:   false,
		},
		{
			name:        "at the limit today is denied",
			user:        types.User{MessagesCount: 10, LastMessageDate: today},
			wantAllowed: false,
		},
		{
			name:        "over the limit today is denied",
			user:        types.User{MessagesCount: 25, LastMessageDate: today},
			wantAllowed: false,
		},
		{
			name:        "subscribed user bypasses the limit",
			user:        types.User{MessagesCount: 100, LastMessageDate: today, IsSubscribed: true},
			wantAllowed: true,
			wantReset:   false,
		},
		{
			name:        "at the limit yesterday rolls the window over",
			user:        types.User{MessagesCount: 10, LastMessageDate: "2026-08-29"},
			wantAllowed: true,
			wantReset:   true,
		},
		{
			name:        "stale date means counter is treated as zero",
			user:        types.User{MessagesCount: 9999, LastMessageDate: "2025-01-01"},
			wantAllowed: true,
			wantReset:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Decide(tt.user, today)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			if tt.wantAllowed {
				assert.Equal(t, today, d.Commit.Date)
				assert.Equal(t, tt.wantReset, d.Commit.Reset)
			} else {
				// Denied decisions carry no mutation.
				assert.Equal(t, types.QuotaCommit{}, d.Commit)
			}
		})
	}
}

func TestPolicy_Decide_SubscribedStillAdvancesCounter(t *testing.T) {
	p := NewPolicy(10)
	d := p.Decide(types.User{MessagesCount: 3, LastMessageDate: today, IsSubscribed: true}, today)

	assert.True(t, d.Allowed)
	assert.Equal(t, today, d.Commit.Date)
	assert.False(t, d.Commit.Reset)
}

func TestNewPolicy_DefaultsLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NewPolicy(0).Limit)
	assert.Equal(t, DefaultLimit, NewPolicy(-5).Limit)
	assert.Equal(t, 3, NewPolicy(3).Limit)
}
