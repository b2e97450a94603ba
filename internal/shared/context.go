package shared

import "context"

type contextKey string

const (
	sessionContextKey contextKey = "stockflow.session"
	companyContextKey contextKey = "stockflow.company"
)

// ContextWithSession attaches the request session to the context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext retrieves the request session, or nil.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey).(*Session)
	return sess
}

// ContextWithCompany attaches the resolved company scope.
func ContextWithCompany(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyContextKey, companyID)
}

// CompanyFromContext returns the tenant boundary for the request. Every
// collection read and write is implicitly filtered to this identity.
func CompanyFromContext(ctx context.Context) (string, error) {
	id, _ := ctx.Value(companyContextKey).(string)
	if id == "" {
		return "", ErrCompanyScopeMissing
	}
	return id, nil
}
