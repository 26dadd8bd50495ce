// Package kvstore defines the opaque byte store every persistence backend
// implements. Keys are namespaced by owner with Key.
package kvstore

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrUnavailable marks backend failures such as a lost connection or an
	// open circuit.
	ErrUnavailable = crerr.New("kv store unavailable")
	// ErrMalformedPayload marks stored values that fail structural validation.
	ErrMalformedPayload = crerr.New("malformed stored payload")
)

// Store is a best-effort key-value store. Get reports a missing key with
// found=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Pinger is implemented by backends that hold a remote connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

const separator = ":"

// Key namespaces name under ownerID.
func Key(ownerID, name string) string {
	return strings.TrimSpace(ownerID) + separator + name
}

// OwnerPrefix is the prefix shared by every key of ownerID.
func OwnerPrefix(ownerID string) string {
	return strings.TrimSpace(ownerID) + separator
}

// Unavailable wraps err and marks it as ErrUnavailable.
func Unavailable(err error, op string) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(crerr.Wrap(err, op), ErrUnavailable)
}

// Malformed wraps err with the stored value's description and marks it as
// ErrMalformedPayload.
func Malformed(err error, what string) error {
	if err == nil {
		err = crerr.New("invalid structure")
	}
	return crerr.Mark(crerr.Wrapf(err, "decode %s", what), ErrMalformedPayload)
}

func IsMalformed(err error) bool {
	return crerr.Is(err, ErrMalformedPayload)
}

// IsUnavailable reports whether err carries the ErrUnavailable mark.
func IsUnavailable(err error) bool {
	return crerr.Is(err, ErrUnavailable)
}
