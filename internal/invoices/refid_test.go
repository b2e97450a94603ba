package invoices

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var refIDPattern = regexp.MustCompile(`^INV-[A-Z0-9]{6}$`)

func TestGenerateMatchesPatternAndStaysUnique(t *testing.T) {
	gen := NewGeneratorWith(rand.New(rand.NewSource(1)), time.Now)

	var collection []Invoice
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		refID := gen.Generate(collection)
		require.Regexp(t, refIDPattern, refID)
		require.False(t, seen[strings.ToLower(refID)], "duplicate %s", refID)
		seen[strings.ToLower(refID)] = true
		collection = append(collection, Invoice{ID: refID, RefID: refID})
	}
}

func TestGenerateFallsBackAfterExhaustedAttempts(t *testing.T) {
	// Replay the generator's draw sequence to seed the collection with the
	// exact candidates a same-seeded generator will produce, forcing every
	// attempt to collide.
	draws := rand.New(rand.NewSource(7))
	collection := make([]Invoice, 0, refIDAttempts)
	for i := 0; i < refIDAttempts; i++ {
		var b strings.Builder
		b.WriteString(refIDPrefix)
		for j := 0; j < refIDLength; j++ {
			b.WriteByte(refIDAlphabet[draws.Intn(len(refIDAlphabet))])
		}
		collection = append(collection, Invoice{ID: b.String(), RefID: b.String()})
	}

	at := time.UnixMilli(1748563200123)
	gen := NewGeneratorWith(rand.New(rand.NewSource(7)), func() time.Time { return at })
	require.Equal(t, "INV-200123", gen.Generate(collection))
}

func TestRefIDTakenIsCaseInsensitive(t *testing.T) {
	collection := []Invoice{
		{ID: "i-1", RefID: "inv-aaa111"},
		{ID: "i-2", RefID: "INV-ZZZ999"},
	}

	require.True(t, RefIDTaken(collection, "INV-AAA111", ""))
	require.True(t, RefIDTaken(collection, "inv-zzz999", ""))
	require.False(t, RefIDTaken(collection, "INV-BBB222", ""))
}

func TestRefIDTakenExcludesEditedInvoice(t *testing.T) {
	collection := []Invoice{
		{ID: "i-1", RefID: "INV-AAA111"},
		{ID: "i-2", RefID: "INV-BBB222"},
	}

	// Keeping its own reference on edit is not a collision.
	require.False(t, RefIDTaken(collection, "INV-AAA111", "i-1"))
	// Taking another invoice's reference still is.
	require.True(t, RefIDTaken(collection, "INV-BBB222", "i-1"))
}
