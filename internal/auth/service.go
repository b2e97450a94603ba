package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockflow-app/stockflow/internal/shared"
)

// CompanyPort provisions the tenant a new account belongs to.
type CompanyPort interface {
	Create(ctx context.Context, name string) (string, error)
}

// MailerPort queues the reset email for background delivery.
type MailerPort interface {
	EnqueueResetEmail(ctx context.Context, email, token string) error
}

// Service wraps authentication business rules.
type Service struct {
	repo      Repository
	companies CompanyPort
	tokens    *ResetTokens
	mailer    MailerPort
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, companies CompanyPort, tokens *ResetTokens, mailer MailerPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, companies: companies, tokens: tokens, mailer: mailer, logger: logger}
}

// Authenticate validates email/password credentials. Every failure collapses
// to ErrInvalidCredentials so callers cannot distinguish unknown accounts
// from wrong passwords.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
}

// SignUp provisions a company and its first account.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	if companyName == "" {
		companyName = "My Company"
	}
	companyID, err := s.companies.Create(ctx, companyName)
	if err != nil {
		return User{}, &shared.BackendError{Op: "auth: create company", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		CompanyID:    companyID,
		IsActive:     true,
	}
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		if err == ErrEmailTaken {
			return User{}, shared.NewValidationError(map[string]string{"email": "Email already registered"})
		}
		return User{}, &shared.BackendError{Op: "auth: insert user", Err: err}
	}
	user.ID = id
	return user, nil
}

// RequestPasswordReset issues a token and queues the reset email. Unknown
// addresses report success without side effects, so the endpoint does not
// leak which emails exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Info("password reset for unknown email", "email", email)
		return nil
	}
	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return &shared.BackendError{Op: "auth: issue reset token", Err: err}
	}
	if err := s.mailer.EnqueueResetEmail(ctx, user.Email, token); err != nil {
		return &shared.BackendError{Op: "auth: enqueue reset email", Err: err}
	}
	return nil
}

// ResetPassword consumes a token and replaces the account password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return &shared.BackendError{Op: "auth: update password", Err: err}
	}
	return nil
}

// Load fetches a user by ID, for session rehydration.
func (s *Service) Load(ctx context.Context, userID string) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

// RegisterSession persists the session metadata for auditing.
func (s *Service) RegisterSession(ctx context.Context, id, userID string, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
