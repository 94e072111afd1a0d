package v1

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"placement-cell-backend/config"
	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/googleauth"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	authUC    domain.AuthUsecase
	google    *googleauth.Client
	clientURL string
}

// NewAuthHandler registers the Google login flow and /auth/me. The
// login and callback routes are public; /auth/me requires a session.
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, google *googleauth.Client, cfg *config.Config) {
	handler := &AuthHandler{
		authUC:    authUC,
		google:    google,
		clientURL: cfg.ClientURL,
	}

	public.GET("/auth/google/:role", handler.BeginLogin)
	public.GET("/auth/google/:role/callback", handler.Callback)
	protected.GET("/auth/me", handler.Me)
}

// BeginLogin redirects the browser to Google's consent screen for the
// requested role.
func (h *AuthHandler) BeginLogin(c *gin.Context) {
	role := c.Param("role")
	if !domain.ValidRole(role) {
		response.Error(c, http.StatusBadRequest, "Unknown role", nil)
		return
	}
	if !h.google.IsConfigured() {
		response.Error(c, http.StatusServiceUnavailable, "Google login is not configured", nil)
		return
	}

	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(role, state))
}

// Callback completes the code exchange and hands the session token to
// the frontend via redirect.
func (h *AuthHandler) Callback(c *gin.Context) {
	role := c.Param("role")
	if !domain.ValidRole(role) {
		response.Error(c, http.StatusBadRequest, "Unknown role", nil)
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		h.redirectError(c, "invalid_state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectError(c, "missing_code")
		return
	}

	info, err := h.google.Exchange(c.Request.Context(), role, code)
	if err != nil {
		h.redirectError(c, "exchange_failed")
		return
	}

	result, err := h.authUC.LoginWithGoogle(c.Request.Context(), domain.Role(role), domain.GoogleProfile{
		Subject: info.Subject,
		Email:   info.Email,
		Name:    info.Name,
	})
	if err != nil {
		h.redirectError(c, "login_rejected")
		return
	}

	c.Redirect(http.StatusFound, h.clientURL+"/auth/callback?token="+url.QueryEscape(result.Token))
}

func (h *AuthHandler) redirectError(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, h.clientURL+"/login?error="+url.QueryEscape(reason))
}

// Me returns the principal behind the current token.
func (h *AuthHandler) Me(c *gin.Context) {
	info, err := h.authUC.CurrentPrincipal(c.Request.Context(), principalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Authenticated", info)
}
