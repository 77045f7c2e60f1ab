// Package id generates identifiers for widget instances.
//
// IDs are ULIDs with a type prefix (wgt_*), so they sort by creation time
// and read clearly in logs.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// WidgetID identifies a mounted widget instance
type WidgetID string

// WidgetPrefix tags widget instance IDs.
const WidgetPrefix = "wgt"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
// Useful for testing with deterministic entropy
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewWidgetID generates a new widget instance ID
func NewWidgetID() WidgetID {
	return WidgetID(Default().GenerateWithPrefix(WidgetPrefix))
}

func (id WidgetID) String() string { return string(id) }

// ParseWidgetID validates s as a widget instance ID.
func ParseWidgetID(s string) (WidgetID, error) {
	prefix, rest, ok := strings.Cut(s, "_")
	if !ok || prefix != WidgetPrefix {
		return "", fmt.Errorf("invalid widget id %q: missing %s_ prefix", s, WidgetPrefix)
	}
	if _, err := ulid.ParseStrict(rest); err != nil {
		return "", fmt.Errorf("invalid widget id %q: %w", s, err)
	}
	return WidgetID(s), nil
}

// Timestamp extracts the creation time from a widget ID
func (id WidgetID) Timestamp() (time.Time, error) {
	_, rest, _ := strings.Cut(string(id), "_")
	parsed, err := ulid.Parse(rest)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
