package persistdb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/mqforge/mqforge/internal/core/manager"
)

var (
	db     *sql.DB
	dbPath string
)

// SetDbPath sets the sqlite file location before the first Open.
func SetDbPath(path string) {
	dbPath = path
}

// OpenDB opens the database connection.
func OpenDB() error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database '%s': %w", dbPath, err)
	}
	return nil
}

// CloseDB closes the database connection.
func CloseDB() {
	if db != nil {
		_ = db.Close()
		db = nil
	}
}

// InitDB creates the schema if it does not exist yet.
func InitDB() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		system_id TEXT,
		vhost TEXT NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT,
		created_at TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}

type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

type UserCreateDTO struct {
	Username string
	Password string
}

// AddUser stores a user with a bcrypt-hashed password.
func AddUser(user UserCreateDTO) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = db.Exec("INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		user.Username, string(hash), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add user '%s': %w", user.Username, err)
	}
	return nil
}

// GetUserByUsername fetches a user record.
func GetUserByUsername(username string) (*User, error) {
	var user User
	row := db.QueryRow("SELECT id, username, created_at FROM users WHERE username = ?", username)
	if err := row.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user '%s' not found", username)
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user, newest first.
func ListUsers() ([]User, error) {
	rows, err := db.Query("SELECT id, username, created_at FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// VerifyCredentials checks a username/password pair against the stored hash.
func VerifyCredentials(username, password string) (bool, error) {
	var hash string
	row := db.QueryRow("SELECT password_hash FROM users WHERE username = ?", username)
	if err := row.Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil, nil
}

// AuditLog adapts the operations table to the manager's audit recorder.
type AuditLog struct{}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (a *AuditLog) RecordOperation(op manager.Operation) error {
	_, err := db.Exec(
		"INSERT INTO operations (id, kind, system_id, vhost, outcome, detail, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		op.ID, op.Kind, op.SystemID, op.VHost, op.Outcome, op.Detail, op.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record operation '%s': %w", op.ID, err)
	}
	return nil
}

// ListOperations returns the most recent operations, newest first.
func ListOperations(limit int) ([]manager.Operation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		"SELECT id, kind, system_id, vhost, outcome, detail, created_at FROM operations ORDER BY created_at DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []manager.Operation
	for rows.Next() {
		var op manager.Operation
		if err := rows.Scan(&op.ID, &op.Kind, &op.SystemID, &op.VHost, &op.Outcome, &op.Detail, &op.CreatedAt); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
