package types

import (
	"context"
	"errors"
	"time"
)

// ErrStorageUnavailable wraps every failure of the underlying user storage.
// Callers must not assume partial writes succeeded when they see it.
var ErrStorageUnavailable = errors.New("storage unavailable")

// DateLayout is the calendar-date form stored in last_message_date.
const DateLayout = "2006-01-02"

// User is the persistent record for one Telegram identity.
// MessagesCount is the number of messages sent on LastMessageDate only,
// not a lifetime total: when the stored date is not today the count is
// stale and must be treated as zero.
type User struct {
	UserID          int64
	Language        string
	AcceptedTerms   bool
	AgeConfirmed    bool
	SelectedBot     string
	MessagesCount   int
	LastMessageDate string
	IsSubscribed    bool
	PaymentMethod   string
	CreatedAt       time.Time
}

// UserUpdate is a typed partial update. Only non-nil fields are written.
// The message counter and its date are owned by ApplyQuotaCommit and are
// deliberately absent here.
type UserUpdate struct {
	Language      *string
	AcceptedTerms *bool
	AgeConfirmed  *bool
	SelectedBot   *string
	IsSubscribed  *bool
	PaymentMethod *string
}

// IsEmpty reports whether the update carries no field changes.
func (u UserUpdate) IsEmpty() bool {
	return u.Language == nil &&
		u.AcceptedTerms == nil &&
		u.AgeConfirmed == nil &&
		u.SelectedBot == nil &&
		u.IsSubscribed == nil &&
		u.PaymentMethod == nil
}

// QuotaCommit describes the counter mutation to apply after a message
// attempt was allowed. Reset means the stored date differed from the
// decision date: the counter restarts at 1 on Date. Otherwise the counter
// for Date is incremented by one.
type QuotaCommit struct {
	Date  string
	Reset bool
}

type UserStore interface {
	// GetOrCreate returns the record for userID, creating it on first
	// access with zero counters and today's date. Idempotent.
	GetOrCreate(ctx context.Context, userID int64) (*User, error)

	// Update applies the non-nil fields of upd atomically with respect to
	// other updates for the same userID.
	Update(ctx context.Context, userID int64, upd UserUpdate) error

	// ApplyQuotaCommit advances the daily message counter as described by
	// c. Same-user commits serialize on the user's row.
	ApplyQuotaCommit(ctx context.Context, userID int64, c QuotaCommit) error
}
