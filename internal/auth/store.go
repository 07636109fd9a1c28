package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ROHANDEV-web/school-assistant/internal/db"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Store manages users and login sessions.
type Store struct {
	db *db.DB
}

// NewStore creates a new auth store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *Store) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if existing, err := s.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	var emailCount int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email,
	).Scan(&emailCount); err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if emailCount > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, last_active_date) VALUES (?, ?, ?, ?)`,
		username, email, string(hash), time.Now().UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Authenticate verifies a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

const userColumns = `id, username, email, password_hash, student_class, xp, questions_today, daily_limit, last_active_date, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.StudentClass,
		&u.XP, &u.QuestionsToday, &u.DailyLimit, &u.LastActiveDate, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by id. Returns nil if not found.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetByUsername retrieves a user by username. Returns nil if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

// UpdateClass sets the student's class/grade label.
func (s *Store) UpdateClass(ctx context.Context, userID int64, class string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET student_class = ? WHERE id = ?`, class, userID)
	if err != nil {
		return fmt.Errorf("updating class: %w", err)
	}
	return nil
}

// AddXP credits experience points to a user.
func (s *Store) AddXP(ctx context.Context, userID int64, xp int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET xp = xp + ? WHERE id = ?`, xp, userID)
	if err != nil {
		return fmt.Errorf("adding xp: %w", err)
	}
	return nil
}

// CreateSession starts a new login session for the user.
func (s *Store) CreateSession(ctx context.Context, userID int64) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(SessionTTL),
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.ExpiresAt, sess.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// ValidateSession resolves a session id to its user. Expired sessions
// are deleted on sight.
func (s *Store) ValidateSession(ctx context.Context, sessionID string) (*User, error) {
	var userID int64
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE id = ?`, sessionID,
	).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up session: %w", err)
	}
	if time.Now().UTC().After(expiresAt) {
		s.DeleteSession(ctx, sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// DeleteSession removes a session (logout).
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
