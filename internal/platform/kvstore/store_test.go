package kvstore

import (
	"errors"
	"io"
	"testing"
)

func TestKey(t *testing.T) {
	if got := Key(" alice ", "dietpop_lineup"); got != "alice:dietpop_lineup" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := OwnerPrefix("alice"); got != "alice:" {
		t.Fatalf("unexpected prefix: %s", got)
	}
}

func TestUnavailableMark(t *testing.T) {
	err := Unavailable(io.ErrUnexpectedEOF, "read row")
	if !IsUnavailable(err) {
		t.Fatalf("expected unavailable mark, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected cause to be preserved")
	}
	if Unavailable(nil, "noop") != nil {
		t.Fatalf("expected nil for nil error")
	}
	if IsUnavailable(io.EOF) {
		t.Fatalf("plain error must not be marked")
	}
}

func TestMalformedMark(t *testing.T) {
	err := Malformed(nil, "lineup")
	if !IsMalformed(err) || IsUnavailable(err) {
		t.Fatalf("unexpected marks on %v", err)
	}
	if got := err.Error(); got != "decode lineup: invalid structure" {
		t.Fatalf("unexpected message: %s", got)
	}
}
