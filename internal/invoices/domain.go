package invoices

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Status enumerates invoice payment states.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
	StatusDraft   Status = "Draft"
)

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPaid, StatusPending, StatusDraft:
		return true
	}
	return false
}

// Invoice is a tracked expense document scoped to a company. RefID is the
// human-facing identifier, distinct from the opaque storage ID, and unique
// case-insensitively within the company. Total is the stored numeric.
type Invoice struct {
	ID               string
	CompanyID        string
	Status           Status
	Date             time.Time
	RefID            string
	Provider         string
	ProviderInitials string
	ProviderColor    string
	Total            float64
	FileName         string
	FileURL          string
	FileType         string
	CreatedAt        time.Time
}

// providerPalette is the fixed set of color tags assigned at creation. The
// tag is stable for the life of the invoice; edits never regenerate it.
var providerPalette = []string{
	"bg-red-100 text-red-600",
	"bg-orange-100 text-orange-600",
	"bg-amber-100 text-amber-600",
	"bg-green-100 text-green-600",
	"bg-emerald-100 text-emerald-600",
	"bg-teal-100 text-teal-600",
	"bg-cyan-100 text-cyan-600",
	"bg-sky-100 text-sky-600",
	"bg-blue-100 text-blue-600",
	"bg-indigo-100 text-indigo-600",
	"bg-violet-100 text-violet-600",
	"bg-purple-100 text-purple-600",
	"bg-fuchsia-100 text-fuchsia-600",
	"bg-pink-100 text-pink-600",
	"bg-rose-100 text-rose-600",
}

// ProviderInitials derives the avatar initials from a provider name: first
// letter of each whitespace-separated word, uppercased, at most two.
func ProviderInitials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteString(strings.ToUpper(string(r)))
		if utf8.RuneCountInString(b.String()) >= 2 {
			break
		}
	}
	return b.String()
}
