package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockflow-app/stockflow/internal/shared"
)

type memoryRepo struct {
	users    map[string]User
	nextID   int
	sessions map[string]string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]User{}, sessions: map[string]string{}}
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (r *memoryRepo) Insert(ctx context.Context, u User) (string, error) {
	if _, err := r.FindByEmail(ctx, u.Email); err == nil {
		return "", ErrEmailTaken
	}
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *memoryRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	u, ok := r.users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	u.PasswordHash = hash
	r.users[userID] = u
	return nil
}

func (r *memoryRepo) CreateSession(ctx context.Context, id, userID string, expiresAt time.Time, ip, ua string) error {
	r.sessions[id] = userID
	return nil
}

func (r *memoryRepo) DeleteSession(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type fakeCompanies struct {
	nextID int
}

func (c *fakeCompanies) Create(ctx context.Context, name string) (string, error) {
	c.nextID++
	return fmt.Sprintf("co-%d", c.nextID), nil
}

type recordedMailer struct {
	emails []string
	tokens []string
}

func (m *recordedMailer) EnqueueResetEmail(ctx context.Context, email, token string) error {
	m.emails = append(m.emails, email)
	m.tokens = append(m.tokens, token)
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, *recordedMailer) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMemoryRepo()
	mailer := &recordedMailer{}
	svc := NewService(repo, &fakeCompanies{}, NewResetTokens(client), mailer, nil)
	return svc, repo, mailer
}

func seedUser(t *testing.T, repo *memoryRepo, email, password string) User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := User{Email: email, PasswordHash: string(hash), CompanyID: "co-1", IsActive: true}
	id, err := repo.Insert(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return u
}

func TestAuthenticate(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "alice@example.com", "s3cret-pass")
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "co-1", user.CompanyID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateRejectsInactiveAccount(t *testing.T) {
	svc, repo, _ := newTestService(t)
	u := seedUser(t, repo, "alice@example.com", "s3cret-pass")
	u.IsActive = false
	repo.users[u.ID] = u

	_, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestSignUpProvisionsCompany(t *testing.T) {
	svc, repo, _ := newTestService(t)

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "Bob@Example.com", Password: "s3cret-pass", FullName: "Bob Builder",
		CompanyName: "Builders Inc",
	})
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", user.Email)
	require.NotEmpty(t, user.CompanyID)
	require.Len(t, repo.users, 1)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "alice@example.com", "s3cret-pass")

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "ALICE@example.com", Password: "s3cret-pass", FullName: "Alice",
	})
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Email already registered", fields["email"])
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repo, mailer := newTestService(t)
	u := seedUser(t, repo, "alice@example.com", "old-password")
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@example.com"))
	require.Len(t, mailer.tokens, 1)

	require.NoError(t, svc.ResetPassword(ctx, mailer.tokens[0], "new-password-1"))
	_, err := svc.Authenticate(ctx, "alice@example.com", "new-password-1")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "alice@example.com", "old-password")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	require.Equal(t, u.CompanyID, "co-1")

	// Tokens are single use.
	err = svc.ResetPassword(ctx, mailer.tokens[0], "another-pass")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	svc, _, mailer := newTestService(t)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	require.Empty(t, mailer.emails)
}
