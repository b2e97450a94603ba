package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// SnapshotDropper evicts a company's cached collections. Called on sign-out
// so the next session starts from a fresh load.
type SnapshotDropper interface {
	Drop(companyID string)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	snapshots      SnapshotDropper
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, snapshots SnapshotDropper) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		snapshots:      snapshots,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/signup", h.handleSignUp)
	r.Post("/logout", h.handleLogout)
	r.Post("/forgot-password", h.handleForgotPassword)
	r.Post("/reset-password", h.handleResetPassword)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}
	if fields, ok := h.validate(req); !ok {
		httpx.ValidationProblem(w, fields)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Authentication failed", "invalid email or password")
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal error", "session unavailable")
		return
	}
	sess.SetUser(user.ID)
	sess.SetCompany(user.CompanyID)

	expiresAt := time.Now().Add(h.sessionManager.TTL())
	if err := h.service.RegisterSession(r.Context(), sess.ID, user.ID, expiresAt, r.RemoteAddr, r.UserAgent()); err != nil {
		h.logger.Warn("register session", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, NewProfile(user))
}

type signUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"fullName" validate:"required"`
	CompanyName string `json:"companyName"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}
	if fields, ok := h.validate(req); !ok {
		httpx.ValidationProblem(w, fields)
		return
	}

	user, err := h.service.SignUp(r.Context(), SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		if fields, ok := shared.AsValidation(err); ok {
			httpx.ValidationProblem(w, fields)
			return
		}
		h.logger.Error("sign up", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Sign up failed", err.Error())
		return
	}

	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.SetUser(user.ID)
		sess.SetCompany(user.CompanyID)
	}

	httpx.JSON(w, http.StatusCreated, NewProfile(user))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if err := h.service.RemoveSession(r.Context(), sess.ID); err != nil {
			h.logger.Warn("remove session", slog.Any("error", err))
		}
		if h.snapshots != nil && sess.Company() != "" {
			h.snapshots.Drop(sess.Company())
		}
		h.sessionManager.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}
	if fields, ok := h.validate(req); !ok {
		httpx.ValidationProblem(w, fields)
		return
	}
	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error("request password reset", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Reset failed", "could not process reset request")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "reset email queued"})
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}
	if fields, ok := h.validate(req); !ok {
		httpx.ValidationProblem(w, fields)
		return
	}
	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, ErrTokenInvalid) {
			httpx.Problem(w, http.StatusBadRequest, "Reset failed", "reset token invalid or expired")
			return
		}
		h.logger.Error("reset password", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Reset failed", "could not reset password")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	user, err := h.service.Load(r.Context(), sess.User())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	httpx.JSON(w, http.StatusOK, NewProfile(user))
}

// validate runs the struct validator and maps failures to field messages.
func (h *Handler) validate(v any) (map[string]string, bool) {
	err := h.validator.Struct(v)
	if err == nil {
		return nil, true
	}
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Error()
		}
	}
	return fields, false
}
