package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get kv entry: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fakeErr("pq: relation kv_entries does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestIsConnectionFailure(t *testing.T) {
	t.Run("matches dial failure", func(t *testing.T) {
		err := fakeErr("dial tcp 127.0.0.1:5432: connect: connection refused")
		if !isConnectionFailure(err) {
			t.Fatalf("expected true for refused connection")
		}
	})

	t.Run("matches closed connection", func(t *testing.T) {
		if !isConnectionFailure(fmt.Errorf("exec: %w", sql.ErrConnDone)) {
			t.Fatalf("expected true for ErrConnDone")
		}
	})

	t.Run("ignores query errors", func(t *testing.T) {
		err := fakeErr("pq: syntax error at or near \"FROM\" (42601)")
		if isConnectionFailure(err) {
			t.Fatalf("expected false for syntax error")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
