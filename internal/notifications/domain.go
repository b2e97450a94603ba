// Package notifications manages the alert feed: low stock warnings, order
// events and informational notices. Read state is optimistic: the unread
// cache updates immediately and the store mirror follows without rollback.
package notifications

import "time"

// Type labels the notification category driving its icon.
type Type string

const (
	TypeInfo  Type = "info"
	TypeAlert Type = "alert"
	TypeOrder Type = "order"
)

// Notification is a single feed item scoped to a company.
type Notification struct {
	ID        string
	CompanyID string
	Title     string
	Message   string
	Type      Type
	Read      bool
	CreatedAt time.Time
}

// View is the client-facing shape with a pre-formatted local display time.
type View struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Read    bool   `json:"read"`
	Time    string `json:"time"`
}

// NewView maps a notification for display.
func NewView(n Notification) View {
	return View{
		ID:      n.ID,
		Title:   n.Title,
		Message: n.Message,
		Type:    string(n.Type),
		Read:    n.Read,
		Time:    n.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
	}
}

// NewViews maps a slice preserving order.
func NewViews(items []Notification) []View {
	views := make([]View, len(items))
	for i, n := range items {
		views[i] = NewView(n)
	}
	return views
}

// UnreadCount counts the unread items in a collection.
func UnreadCount(items []Notification) int {
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count
}
