package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"thescent/internal/middleware"
	"thescent/internal/models"
	"thescent/internal/services"
)

type AuthHandler struct {
	auth         *services.AuthService
	sessions     *services.SessionService
	email        services.EmailService
	cookieSecure bool
}

func NewAuthHandler(auth *services.AuthService, sessions *services.SessionService, email services.EmailService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, email: email, cookieSecure: cookieSecure}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.cookieSecure, true)
}

// @Summary      Register a new account
// @Description  Creates an account and signs the user in immediately
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        account  body      models.RegisterRequest  true  "Account details"
// @Success      201      {object}  models.User
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	user, err := h.auth.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail), errors.Is(err, services.ErrDuplicateUsername):
			// Same status the storefront clients already expect for taken
			// email or username.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[auth][register] email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	session, err := h.sessions.Create(user.ID)
	if err != nil {
		log.Printf("[auth][register] session for userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	h.setSessionCookie(c, session.Token, int(h.sessions.TTL().Seconds()))

	if h.email != nil {
		if err := h.email.SendWelcomeEmail(user.Email, user.Username); err != nil {
			log.Printf("[auth][register] welcome email to %q: %v", user.Email, err)
		}
	}

	log.Printf("[auth][register] success userID=%d email=%q", user.ID, user.Email)
	c.JSON(http.StatusCreated, user)
}

// @Summary      Log in
// @Description  Verifies credentials and issues a session cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  models.User
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	user, err := h.auth.Login(email, req.Password)
	if err != nil {
		var locked *services.AccountLockedError
		switch {
		case errors.As(err, &locked):
			log.Printf("[auth][login] locked email=%q until=%s fresh=%v", email, locked.Until.Format("15:04:05"), locked.Fresh)
			c.JSON(http.StatusUnauthorized, gin.H{"error": locked.Error()})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		default:
			log.Printf("[auth][login] email=%q: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	session, err := h.sessions.Create(user.ID)
	if err != nil {
		log.Printf("[auth][login] session for userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	h.setSessionCookie(c, session.Token, int(h.sessions.TTL().Seconds()))

	log.Printf("[auth][login] success userID=%d", user.ID)
	c.JSON(http.StatusOK, user)
}

// @Summary      Log out
// @Description  Destroys the session and clears the cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.sessions.Destroy(token); err != nil {
			log.Printf("[auth][logout] destroy session: %v", err)
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary      Current account
// @Description  Returns the account behind the session cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := h.auth.CurrentAccount(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		log.Printf("[auth][me] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}
	c.JSON(http.StatusOK, user)
}
