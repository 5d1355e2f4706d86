package handler

import (
	"encoding/json"
	"net/http"

	"simple-notes-server/internal/identity"
	"simple-notes-server/internal/session"
	"simple-notes-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// AuthHandler exposes the thin login surface. The identity provider does the
// actual authentication; this server only initiates magic links, reports the
// current session and clears the session cookie.
type AuthHandler struct {
	provider   *identity.Client
	resolver   session.Resolver
	cookieName string
	validate   *validator.Validate
	logger     *logrus.Logger
}

func NewAuthHandler(provider *identity.Client, resolver session.Resolver, cookieName string, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		provider:   provider,
		resolver:   resolver,
		cookieName: cookieName,
		validate:   validator.New(),
		logger:     logger,
	}
}

type loginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RedirectTo string `json:"redirect_to"`
}

// Login asks the provider to email a magic link. The resulting session
// token comes back through the provider's callback, not through here.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "A valid email is required")
		return
	}

	if err := h.provider.SendMagicLink(r.Context(), req.Email, req.RedirectTo); err != nil {
		h.logger.WithField("error", err.Error()).Error("failed to send magic link")
		response.InternalError(w, "Failed to send login link")
		return
	}

	response.Data(w, http.StatusOK, map[string]bool{"sent": true})
}

// Session reports the identity behind the current request, or 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID := h.resolver.Resolve(r)
	if userID == session.Anonymous {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	response.Data(w, http.StatusOK, map[string]string{"user_id": userID})
}

// Logout expires the session cookie. The provider-side session is left to
// the provider's own expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	name := h.cookieName
	if cookie := session.SessionCookie(r, h.cookieName); cookie != nil {
		name = cookie.Name
	}

	if name != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}

	response.Deleted(w)
}
