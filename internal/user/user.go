// Package user persists user accounts, profiles, and usage statistics.
//
// Authentication is a bearer credential: each user carries one opaque token,
// generated at account creation, that callers present to act as that user.
package user

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/minbarhq/minbar/internal/log"
)

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrExists indicates an account already uses the email.
	ErrExists = errors.New("user already exists")
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// defaultSettings apply until the user stores their own.
var defaultSettings = map[string]any{
	"theme":         "light",
	"language":      "en",
	"notifications": true,
	"font_size":     "medium",
	"auto_save":     true,
}

// defaultTopics are reported when the user has no messages to derive
// favorites from.
var defaultTopics = []string{"Prayer", "Fasting", "Zakat"}

// statTopics are the topic labels counted for the favorite-topics stat.
var statTopics = []string{"Prayer", "Fasting", "Zakat", "Hajj", "Quran", "Hadith"}

// User is one account.
type User struct {
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Picture     string         `json:"picture,omitempty"`
	Token       string         `json:"-"`
	Preferences map[string]any `json:"preferences"`
	Settings    map[string]any `json:"settings"`
	CreatedAt   time.Time      `json:"created_at"`
	LastLogin   time.Time      `json:"last_login"`
}

// ProfileUpdate carries the fields a profile update may change. Nil fields
// are left untouched; preference and settings maps are merged key-wise.
type ProfileUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Picture     *string        `json:"picture,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// Stats summarizes a user's activity.
type Stats struct {
	TotalChats     int       `json:"total_chats"`
	TotalMessages  int       `json:"total_messages"`
	FavoriteTopics []string  `json:"favorite_topics"`
	JoinedDate     time.Time `json:"joined_date"`
	LastActive     time.Time `json:"last_active"`
}

// Store provides user persistence over an open database.
type Store struct {
	db     *sql.DB
	logger log.Logger
}

// NewStore creates a user store.
func NewStore(db *sql.DB, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Create registers a new account and returns it with its freshly generated
// access token. The token is shown only here.
func (s *Store) Create(ctx context.Context, email, name string) (*User, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	now := time.Now().UTC()
	u := &User{
		Email:       email,
		Name:        name,
		Token:       token,
		Preferences: map[string]any{},
		Settings:    map[string]any{},
		CreatedAt:   now,
		LastLogin:   now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (email, name, picture, token, preferences, settings, created_at, last_login)
		VALUES (?, ?, '', ?, '{}', '{}', ?, ?)`,
		email, name, token, now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrExists, email)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", "email", email)
	return u, nil
}

// Get returns one user by email.
func (s *Store) Get(ctx context.Context, email string) (*User, error) {
	return s.one(ctx, "email = ?", email)
}

// ByToken resolves the account a bearer credential belongs to.
func (s *Store) ByToken(ctx context.Context, token string) (*User, error) {
	return s.one(ctx, "token = ?", token)
}

// TouchLogin records account activity.
func (s *Store) TouchLogin(ctx context.Context, email string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login = ? WHERE email = ?", now.Format(timeLayout), email)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile applies a partial profile update and returns the updated
// user. Preference and settings maps are merged with the stored ones.
func (s *Store) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (*User, error) {
	u, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && *upd.Name != "" {
		u.Name = *upd.Name
	}
	if upd.Picture != nil {
		u.Picture = *upd.Picture
	}
	for k, v := range upd.Preferences {
		u.Preferences[k] = v
	}
	for k, v := range upd.Settings {
		u.Settings[k] = v
	}

	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return nil, fmt.Errorf("encoding preferences: %w", err)
	}
	settings, err := json.Marshal(u.Settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE users SET name = ?, picture = ?, preferences = ?, settings = ?
		WHERE email = ?`,
		u.Name, u.Picture, string(prefs), string(settings), email,
	)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return u, nil
}

// Settings returns the user's settings, falling back to the defaults for a
// user who never stored any.
func (s *Store) Settings(ctx context.Context, email string) (map[string]any, error) {
	u, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(u.Settings) == 0 {
		out := make(map[string]any, len(defaultSettings))
		for k, v := range defaultSettings {
			out[k] = v
		}
		return out, nil
	}
	return u.Settings, nil
}

// UpdateSettings merges new settings into the stored ones and returns the
// merged result.
func (s *Store) UpdateSettings(ctx context.Context, email string, settings map[string]any) (map[string]any, error) {
	u, err := s.UpdateProfile(ctx, email, ProfileUpdate{Settings: settings})
	if err != nil {
		return nil, err
	}
	return u.Settings, nil
}

// Stats computes the user's chat totals and favorite topics. Favorites are
// the topic labels mentioned most often in the user's own messages.
func (s *Store) Stats(ctx context.Context, email string) (*Stats, error) {
	u, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		FavoriteTopics: defaultTopics,
		JoinedDate:     u.CreatedAt,
		LastActive:     u.LastLogin,
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(message_count), 0)
		FROM sessions WHERE user_email = ?`, email).
		Scan(&stats.TotalChats, &stats.TotalMessages)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}

	topics, err := s.favoriteTopics(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(topics) > 0 {
		stats.FavoriteTopics = topics
	}
	return stats, nil
}

// Delete removes the account and, via cascade, its sessions and messages.
func (s *Store) Delete(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	s.logger.Info("user deleted", "email", email)
	return nil
}

// favoriteTopics ranks the stat topics by how often the user's messages
// mention them, keeping the top three.
func (s *Store) favoriteTopics(ctx context.Context, email string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.content FROM messages m
		JOIN sessions sess ON sess.id = m.session_id
		WHERE sess.user_email = ? AND m.role = 'user'`, email)
	if err != nil {
		return nil, fmt.Errorf("loading messages for stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		lower := strings.ToLower(content)
		for _, topic := range statTopics {
			if strings.Contains(lower, strings.ToLower(topic)) {
				counts[topic]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading messages for stats: %w", err)
	}

	var ranked []string
	for topic, n := range counts {
		if n > 0 {
			ranked = append(ranked, topic)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked, nil
}

func (s *Store) one(ctx context.Context, where string, arg any) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT email, name, picture, token, preferences, settings, created_at, last_login
		FROM users WHERE `+where, arg)

	var (
		u         User
		prefs     string
		settings  string
		createdAt string
		lastLogin string
	)
	err := row.Scan(&u.Email, &u.Name, &u.Picture, &u.Token, &prefs, &settings, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if err := json.Unmarshal([]byte(prefs), &u.Preferences); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(settings), &u.Settings); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	u.LastLogin = parseTime(lastLogin)
	return &u, nil
}

// newToken generates the opaque bearer credential for a new account.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// isUniqueViolation detects the driver's unique-constraint failure without
// depending on its error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func parseTime(value string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
