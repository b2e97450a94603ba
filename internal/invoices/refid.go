package invoices

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	refIDPrefix   = "INV-"
	refIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refIDLength   = 6
	refIDAttempts = 50
)

// Generator produces human-readable reference codes unique against a
// collection snapshot. Both randomness and clock are injectable for tests.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewGenerator builds a Generator seeded from the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

// NewGeneratorWith builds a Generator with explicit randomness and clock.
func NewGeneratorWith(r *rand.Rand, now func() time.Time) *Generator {
	return &Generator{rand: r, now: now}
}

// RefIDTaken reports whether candidate collides case-insensitively with any
// invoice in the collection, excluding the one identified by excludeID.
func RefIDTaken(collection []Invoice, candidate, excludeID string) bool {
	lowered := strings.ToLower(candidate)
	for _, inv := range collection {
		if excludeID != "" && inv.ID == excludeID {
			continue
		}
		if strings.ToLower(inv.RefID) == lowered {
			return true
		}
	}
	return false
}

// ProviderColor draws a color tag from the palette. Called once at creation;
// edits keep the stored tag.
func (g *Generator) ProviderColor() string {
	return providerPalette[g.rand.Intn(len(providerPalette))]
}

// Generate returns a fresh reference code of the form INV-XXXXXX, unique
// case-insensitively against the collection. After 50 colliding draws it
// falls back to the last six digits of the epoch millisecond clock; the
// fallback is not guaranteed unique and the store's unique index is the
// final arbiter at commit time.
func (g *Generator) Generate(collection []Invoice) string {
	for attempt := 0; attempt < refIDAttempts; attempt++ {
		var b strings.Builder
		b.WriteString(refIDPrefix)
		for i := 0; i < refIDLength; i++ {
			b.WriteByte(refIDAlphabet[g.rand.Intn(len(refIDAlphabet))])
		}
		candidate := b.String()
		if !RefIDTaken(collection, candidate, "") {
			return candidate
		}
	}
	millis := strconv.FormatInt(g.now().UnixMilli(), 10)
	if len(millis) > refIDLength {
		millis = millis[len(millis)-refIDLength:]
	}
	return refIDPrefix + millis
}
