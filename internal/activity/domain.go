// Package activity keeps the append-only audit trail shown on the history
// page. Entries are written as a side effect of product saves and sale
// processing and are never mutated or deleted.
package activity

import "time"

// Kind labels what sort of action an entry records.
type Kind string

const (
	KindAdd     Kind = "add"
	KindSale    Kind = "sale"
	KindEdit    Kind = "edit"
	KindAlert   Kind = "alert"
	KindInvoice Kind = "invoice"
)

// Entry is a single audit record.
type Entry struct {
	ID        string
	CompanyID string
	User      string
	Action    string
	Target    string
	Kind      Kind
	CreatedAt time.Time
}

// View is the client-facing shape with a pre-formatted timestamp.
type View struct {
	ID     string `json:"id"`
	User   string `json:"user"`
	Action string `json:"action"`
	Target string `json:"target"`
	Time   string `json:"time"`
	Type   string `json:"type"`
}

// NewView maps an entry for display.
func NewView(e Entry) View {
	return View{
		ID:     e.ID,
		User:   e.User,
		Action: e.Action,
		Target: e.Target,
		Time:   e.CreatedAt.Format(time.RFC3339),
		Type:   string(e.Kind),
	}
}

// NewViews maps a slice preserving order.
func NewViews(entries []Entry) []View {
	views := make([]View, len(entries))
	for i, e := range entries {
		views[i] = NewView(e)
	}
	return views
}
