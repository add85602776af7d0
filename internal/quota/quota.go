// Package quota decides whether a user message is allowed under the daily
// free-tier limit. Decide is pure: it never touches storage, it only reads
// the record and the date it is given.
package quota

import "github.com/aidalabs/aida-bot/types"

// DefaultLimit is the free-tier message allowance per calendar day.
const DefaultLimit = 10

type Policy struct {
	Limit int
}

func NewPolicy(limit int) Policy {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Policy{Limit: limit}
}

// Decision is the outcome for one message attempt. Commit is meaningful
// only when Allowed is true; a denied message carries no mutation.
type Decision struct {
	Allowed bool
	Commit  types.QuotaCommit
}

// Decide evaluates the record against today. Subscribed users always pass;
// the counter is still advanced for them so usage stays visible, but it
// never gates. A stored date other than today means the counter is stale
// and the window restarts.
//
// The caller must capture today once at decision time and hand the same
// date to the commit, so a request crossing midnight cannot double-reset.
func (p Policy) Decide(u types.User, today string) Decision {
	sameDay := u.LastMessageDate == today

	if !u.IsSubscribed && sameDay && u.MessagesCount >= p.Limit {
		return Decision{Allowed: false}
	}

	return Decision{
		Allowed: true,
		Commit: types.QuotaCommit{
			Date:  today,
			Reset: !sameDay,
		},
	}
}
