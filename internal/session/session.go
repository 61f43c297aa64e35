// Package session persists chat sessions and their messages in SQLite.
//
// A session is a named conversation with a preview (the first user message,
// truncated) and a message count. Appends are serialized at this boundary so
// concurrent writers to the same session cannot interleave message order.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minbarhq/minbar/internal/log"
)

var (
	// ErrNotFound indicates the session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidRole indicates a message role outside user/assistant.
	ErrInvalidRole = errors.New("invalid message role")
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// timeLayout is fixed-width so lexicographic ordering of stored
// timestamps matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// defaultPreview is shown for sessions with no user message yet.
const defaultPreview = "New conversation"

// previewLimit is the preview truncation length in runes.
const previewLimit = 50

// Session is one conversation.
type Session struct {
	ID           string    `json:"id"`
	UserEmail    string    `json:"-"`
	Name         string    `json:"name"`
	Preview      string    `json:"preview"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is one turn in a conversation.
type Message struct {
	ID        int64     `json:"-"`
	SessionID string    `json:"-"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// Store provides session persistence over an open database.
type Store struct {
	db     *sql.DB
	logger log.Logger

	// appendMu serializes message appends so order is deterministic even
	// with concurrent callers on the same session.
	appendMu sync.Mutex
}

// NewStore creates a session store.
func NewStore(db *sql.DB, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Create starts a new session. An empty name gets the dated default.
func (s *Store) Create(ctx context.Context, userEmail, name string) (*Session, error) {
	now := time.Now().UTC()
	if name == "" {
		name = "Chat " + now.Format("2006-01-02 15:04")
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserEmail: userEmail,
		Name:      name,
		Preview:   defaultPreview,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_email, name, preview, message_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		sess.ID, nullable(userEmail), sess.Name, sess.Preview,
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Debug("session created", "session_id", sess.ID, "name", sess.Name)
	return sess, nil
}

// Get returns one session by ID.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_email, name, preview, message_count, created_at, updated_at
		FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// List returns the user's sessions ordered by most recently updated. An
// empty userEmail lists the anonymous sessions.
func (s *Store) List(ctx context.Context, userEmail string) ([]*Session, error) {
	query := `
		SELECT id, user_email, name, preview, message_count, created_at, updated_at
		FROM sessions WHERE user_email = ?
		ORDER BY updated_at DESC, id DESC`
	args := []any{userEmail}
	if userEmail == "" {
		query = `
			SELECT id, user_email, name, preview, message_count, created_at, updated_at
			FROM sessions WHERE user_email IS NULL
			ORDER BY updated_at DESC, id DESC`
		args = nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// Delete removes a session and, via cascade, its messages.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.logger.Debug("session deleted", "session_id", id)
	return nil
}

// AddMessage appends a message and maintains the session's bookkeeping:
// message count, updated_at, and the preview from the first user message.
func (s *Store) AddMessage(ctx context.Context, sessionID, role, content string) (*Message, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = tx.QueryRowContext(ctx, "SELECT message_count FROM sessions WHERE id = ?", sessionID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO messages (session_id, role, content, created_at)
		VALUES (?, ?, ?, ?)`,
		sessionID, role, content, now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}
	msgID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	count++
	if role == RoleUser && count <= 2 {
		_, err = tx.ExecContext(ctx, `
			UPDATE sessions SET message_count = ?, updated_at = ?, preview = ?
			WHERE id = ?`,
			count, now.Format(timeLayout), truncatePreview(content), sessionID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE sessions SET message_count = ?, updated_at = ?
			WHERE id = ?`,
			count, now.Format(timeLayout), sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	return &Message{
		ID:        msgID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}, nil
}

// Messages returns a session's messages in chronological order. A positive
// limit returns only the most recent messages.
func (s *Store) Messages(ctx context.Context, sessionID string, limit int) ([]*Message, error) {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, session_id, role, content, created_at
		FROM messages WHERE session_id = ? ORDER BY id`
	args := []any{sessionID}
	if limit > 0 {
		query = `
			SELECT id, session_id, role, content, created_at FROM (
				SELECT id, session_id, role, content, created_at
				FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?
			) ORDER BY id`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var (
			msg       Message
			createdAt string
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.CreatedAt = parseTime(createdAt)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	return messages, nil
}

// truncatePreview shortens the first user message to the preview length.
func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var (
		sess      Session
		userEmail sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&sess.ID, &userEmail, &sess.Name, &sess.Preview,
		&sess.MessageCount, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	sess.UserEmail = userEmail.String
	sess.CreatedAt = parseTime(createdAt)
	sess.UpdatedAt = parseTime(updatedAt)
	return &sess, nil
}

// parseTime reads the timestamp formats this store writes, plus SQLite's
// CURRENT_TIMESTAMP format for rows created by defaults.
func parseTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
