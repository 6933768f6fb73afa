// Package id provides identifier generation for the explorer.
//
// Recycle ids name physical objects inside the recycle namespace. They are
// ULIDs, so they sort by deletion time and never collide across windows,
// and they carry no part of the original file name.
//
// Session ids identify one explorer window and are random UUIDs.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RecycleID identifies one recycled item.
type RecycleID string

// SessionID identifies an explorer window.
type SessionID string

// RequestID identifies an API request.
type RequestID string

const (
	RecyclePrefix = "rb"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// entropy, so ids generated within one millisecond still sort in order.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewRecycleID generates a fresh recycle id.
func (g *Generator) NewRecycleID() RecycleID {
	return RecycleID(g.GenerateWithPrefix(RecyclePrefix))
}

// NewRecycleID generates a recycle id from the default generator.
func NewRecycleID() RecycleID {
	return Default().NewRecycleID()
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewSessionID generates a random session id.
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func (id RecycleID) String() string { return string(id) }
func (id SessionID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// IsRecycleID reports whether s has the shape of a recycle id. Used to tell
// recycled objects apart from stray files in the recycle namespace.
func IsRecycleID(s string) bool {
	prefix, rest, ok := strings.Cut(s, "_")
	return ok && prefix == RecyclePrefix && IsValid(rest)
}

// IsSessionID checks if s is a valid session id.
func IsSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Parse parses a ULID string
func Parse(id string) (ulid.ULID, error) {
	return ulid.Parse(id)
}

// Timestamp extracts the timestamp from a ULID, with or without a prefix.
func Timestamp(id string) (time.Time, error) {
	if _, rest, ok := strings.Cut(id, "_"); ok {
		id = rest
	}
	parsed, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
