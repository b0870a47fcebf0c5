package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/avelkov/focusboard/internal/core/services"
)

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	SessionSecret      string
	SecureCookies      bool
}

// SetupOAuth wires the google provider into gothic. Call once at startup,
// before the router starts serving.
func SetupOAuth(cfg OAuthConfig) {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	goth.UseProviders(
		google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, "email", "profile"),
	)
	gothic.GetProviderName = func(req *http.Request) (string, error) {
		return "google", nil
	}
}

type OAuthHandler struct {
	service      *services.AuthService
	tokenService *services.TokenService
}

func NewOAuthHandler(service *services.AuthService, tokenService *services.TokenService) *OAuthHandler {
	return &OAuthHandler{
		service:      service,
		tokenService: tokenService,
	}
}

func (h *OAuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/google", h.Begin)
		authGroup.GET("/google/callback", h.Callback)
	}
}

func (h *OAuthHandler) Begin(c *gin.Context) {
	// If the provider session is already valid, skip the redirect dance.
	if user, err := gothic.CompleteUserAuth(c.Writer, c.Request); err == nil {
		h.issueToken(c, user)
		return
	}
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func (h *OAuthHandler) Callback(c *gin.Context) {
	user, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}
	h.issueToken(c, user)
}

func (h *OAuthHandler) issueToken(c *gin.Context, gothUser goth.User) {
	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}

	user, err := h.service.LoginWithGoogle(c.Request.Context(), gothUser.UserID, name, gothUser.Email)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	token, err := h.tokenService.GenerateToken(user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}
