package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aidalabs/aida-bot/types"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	if port == "" {
		port = "5432"
	}
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	if db == "" {
		db = "aida"
	}
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	if user == "" {
		user = "aida"
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", urlEscape(user), urlEscape(pass), host, port, db)
}

func urlEscape(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		":", "%3A",
		"/", "%2F",
		"@", "%40",
		"?", "%3F",
		"#", "%23",
		"[", "%5B",
		"]", "%5D",
	)
	return r.Replace(s)
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, types.ErrStorageUnavailable, err)
}

// GetOrCreate inserts the record on first access and reads it back. The
// insert is ON CONFLICT DO NOTHING, so racing first messages from the same
// user produce exactly one row.
func (s *PostgresStore) GetOrCreate(ctx context.Context, userID int64) (*types.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	today := time.Now().Format(types.DateLayout)
	_, err := s.pool.Exec(ctx, `
INSERT INTO users (user_id, last_message_date)
VALUES ($1, $2)
ON CONFLICT (user_id) DO NOTHING;
`, userID, today)
	if err != nil {
		return nil, storageErr("get or create user", err)
	}

	var u types.User
	err = s.pool.QueryRow(ctx, `
SELECT user_id, language, accepted_terms, age_confirmed, selected_bot,
       messages_count, last_message_date, is_subscribed, payment_method, created_at
FROM users
WHERE user_id = $1
`, userID).Scan(&u.UserID, &u.Language, &u.AcceptedTerms, &u.AgeConfirmed, &u.SelectedBot,
		&u.MessagesCount, &u.LastMessageDate, &u.IsSubscribed, &u.PaymentMethod, &u.CreatedAt)
	if err != nil {
		return nil, storageErr("get or create user", err)
	}
	return &u, nil
}

// Update writes the non-nil fields of upd. The SET list is built from the
// typed struct only; caller-supplied column names never reach the query.
func (s *PostgresStore) Update(ctx context.Context, userID int64, upd types.UserUpdate) error {
	assignments, args := buildUserUpdate(upd)
	if len(assignments) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s, updated_at = NOW() WHERE user_id = $%d`,
		strings.Join(assignments, ", "), len(args))
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return storageErr("update user", err)
	}
	return nil
}

func buildUserUpdate(upd types.UserUpdate) ([]string, []any) {
	var assignments []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Language != nil {
		add("language", strings.TrimSpace(*upd.Language))
	}
	if upd.AcceptedTerms != nil {
		add("accepted_terms", *upd.AcceptedTerms)
	}
	if upd.AgeConfirmed != nil {
		add("age_confirmed", *upd.AgeConfirmed)
	}
	if upd.SelectedBot != nil {
		add("selected_bot", strings.TrimSpace(*upd.SelectedBot))
	}
	if upd.IsSubscribed != nil {
		add("is_subscribed", *upd.IsSubscribed)
	}
	if upd.PaymentMethod != nil {
		add("payment_method", strings.TrimSpace(*upd.PaymentMethod))
	}
	return assignments, args
}

// ApplyQuotaCommit advances the daily counter in a single statement. The
// increment branch reads the stored value server-side, so overlapping
// same-day commits serialize on the row lock and never lose a count.
func (s *PostgresStore) ApplyQuotaCommit(ctx context.Context, userID int64, c types.QuotaCommit) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var err error
	if c.Reset {
		_, err = s.pool.Exec(ctx, `
UPDATE users
SET messages_count = 1, last_message_date = $2, updated_at = NOW()
WHERE user_id = $1
`, userID, c.Date)
	} else {
		_, err = s.pool.Exec(ctx, `
UPDATE users
SET messages_count = messages_count + 1, last_message_date = $2, updated_at = NOW()
WHERE user_id = $1
`, userID, c.Date)
	}
	if err != nil {
		return storageErr("apply quota commit", err)
	}
	return nil
}
