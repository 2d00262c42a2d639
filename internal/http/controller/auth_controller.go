package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/config"
)

// AuthController handles the login and logout endpoints for the single
// admin account.
type AuthController struct {
	conf *config.Config
}

// NewAuthController creates a new AuthController.
func NewAuthController(conf *config.Config) *AuthController {
	return &AuthController{conf: conf}
}

// LoginForm handles GET /login.
func (ac *AuthController) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": takeFlash(c),
	})
}

// Login handles POST /login. Wrong username and wrong password produce
// the same response, so the form never reveals which part was off.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !auth.VerifyCredentials(ac.conf.Admin.Username, ac.conf.Admin.PasswordHash, username, password) {
		slog.Warn("rejected login attempt", slog.String("username", username))
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Message": "Invalid credentials.",
		})
		return
	}

	token, err := auth.GenerateSessionToken(ac.conf.Session.Secret, username)
	if err != nil {
		slog.Error("failed to issue session token", slog.Any("err", err))
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Message": "Something went wrong, try again.",
		})
		return
	}

	c.SetCookie(auth.SessionCookieName, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout handles GET /logout: clears the session cookie unconditionally
// and returns to the login form.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
