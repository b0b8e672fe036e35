// Package console implements the interactive read-execute loop around
// the DeadBasic engine.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os/user"
	"strings"

	"github.com/google/uuid"
	"github.com/theramdev/deadbasic/pkg/configuration"
	"github.com/theramdev/deadbasic/pkg/deadbasic"
	"github.com/theramdev/deadbasic/pkg/logger"
)

// Session is one interactive session: a prompt loop feeding lines to
// the interpreter. Errors abort only the current line.
type Session struct {
	ID      string
	user    string
	in      *bufio.Reader
	out     io.Writer
	interp  *deadbasic.Interpreter
	history *History
}

// NewSession creates a session reading from in and writing to out.
func NewSession(in io.Reader, out io.Writer) *Session {
	br := bufio.NewReader(in)
	s := &Session{
		ID:     uuid.New().String(),
		user:   currentUser(),
		in:     br,
		out:    out,
		interp: deadbasic.New(out, br),
	}
	if configuration.GetBool("Console", "history_enabled", true) {
		dbPath := configuration.GetString("History", "db_path", "deadbasic_history.db")
		hist, err := OpenHistory(dbPath)
		if err != nil {
			// The console works fine without history.
			logger.Error(logger.AreaHistory, "history store unavailable: %v", err)
		} else {
			s.history = hist
			if err := hist.BeginSession(s.ID, s.user); err != nil {
				logger.Error(logger.AreaHistory, "session row insert failed: %v", err)
			}
		}
	}
	return s
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "user"
}

// Run reads and executes lines until quit, exit or end of input.
func (s *Session) Run() error {
	defer s.Close()

	if configuration.GetBool("Console", "show_banner", true) {
		fmt.Fprintf(s.out, "DeadBasic Console v%s - type exit to exit.\n", deadbasic.Version)
	}
	logger.ConsoleInfo("session %s started for user %s", s.ID, s.user)

	lineNo := 0
	for {
		lineNo++
		fmt.Fprintf(s.out, "DB %s> ", s.user)

		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(s.out, "\nbye")
			return nil
		}
		line = strings.TrimRight(line, "\r\n")

		trimmed := strings.ToLower(strings.TrimSpace(line))
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(s.out, "bye")
			return nil
		}

		if s.history != nil {
			if err := s.history.Record(s.ID, lineNo, line); err != nil {
				logger.Error(logger.AreaHistory, "record failed: %v", err)
			}
		}

		if err := s.interp.ExecuteLine(line, lineNo); err != nil {
			fmt.Fprintln(s.out, err)
		}
	}
}

// Close releases the session's resources.
func (s *Session) Close() {
	if s.history != nil {
		s.history.Close()
		s.history = nil
	}
	logger.ConsoleDebug("session %s closed", s.ID)
}
