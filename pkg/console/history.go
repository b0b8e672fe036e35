package console

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// History persists the lines typed in interactive sessions to a local
// SQLite database. Program variables are never stored here; variable
// state lives only for the session.
type History struct {
	conn *sql.DB
}

// OpenHistory opens (or creates) the history database.
func OpenHistory(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	h := &History{conn: db}
	if err := h.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			started_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			line_no INTEGER NOT NULL,
			input TEXT NOT NULL,
			entered_at INTEGER NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		)`,
	}
	for _, query := range queries {
		if _, err := h.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// BeginSession records the session metadata row.
func (h *History) BeginSession(sessionID, username string) error {
	_, err := h.conn.Exec(
		`INSERT OR IGNORE INTO sessions (id, username, started_at) VALUES (?, ?, ?)`,
		sessionID, username, time.Now().Unix())
	return err
}

// Record stores one typed line.
func (h *History) Record(sessionID string, lineNo int, input string) error {
	id := uuid.New().String()
	_, err := h.conn.Exec(
		`INSERT INTO history (id, session_id, line_no, input, entered_at) VALUES (?, ?, ?, ?, ?)`,
		id, sessionID, lineNo, input, time.Now().Unix())
	return err
}

// Recent returns the last n typed lines of a session, oldest first.
func (h *History) Recent(sessionID string, n int) ([]string, error) {
	rows, err := h.conn.Query(
		`SELECT input FROM (
			SELECT input, line_no FROM history
			WHERE session_id = ? ORDER BY line_no DESC LIMIT ?
		) ORDER BY line_no ASC`,
		sessionID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, err
		}
		lines = append(lines, input)
	}
	return lines, rows.Err()
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.conn.Close()
}
