package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chefai/chefai/internal/application"
	"github.com/chefai/chefai/internal/interface/middleware"
	"github.com/chefai/chefai/pkg/helpers"
	"github.com/chefai/chefai/pkg/response"
	"github.com/chefai/chefai/pkg/validation"
)

// emailRE is intentionally loose: anything shaped like local@domain.tld.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

type AuthHandler struct {
	Svc     *application.AuthService
	JWT     *helpers.JWTManager
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("register: bad payload")
		response.Err(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.Err(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if !emailRE.MatchString(req.Email) {
		response.Err(c, http.StatusBadRequest, "Please enter a valid email address")
		return
	}
	if len(req.Password) < minPasswordLen {
		response.Err(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, application.RequestMeta{
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Err(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Err(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	msg := "Registration successful - Data stored in both main and signup databases"
	if res.Backend == application.BackendFallback {
		msg = "Registration successful (using fallback storage)"
	}

	h.Cookies.Set(c, res.Token, res.TokenExpiry)
	c.JSON(http.StatusCreated, gin.H{
		"user":           response.NewUser(res.User),
		"token":          res.Token,
		"message":        msg,
		"signupRecorded": res.SignupRecorded,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("login: bad payload")
		response.Err(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Err(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			// One message for unknown email and wrong password alike.
			response.Err(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, application.ErrStoreUnavailable):
			h.Logger.WithError(err).Error("login: both stores unavailable")
			response.Err(c, http.StatusServiceUnavailable, "Database connection failed. Please try again later.")
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Err(c, http.StatusInternalServerError, "Internal server error. Please try again.")
		}
		return
	}

	msg := "Login successful"
	if res.Backend == application.BackendFallback {
		msg = "Login successful (using fallback storage)"
	}

	h.Cookies.Set(c, res.Token, res.TokenExpiry)
	c.JSON(http.StatusOK, gin.H{
		"user":    response.NewUser(res.User),
		"token":   res.Token,
		"message": msg,
	})
}

// Logout handles POST /api/auth/logout. It clears the cookie without
// inspecting the token, so calling it twice is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Validate handles GET /api/auth/validate.
func (h *AuthHandler) Validate(c *gin.Context) {
	token, err := c.Cookie(helpers.AuthCookie)
	if err != nil || token == "" {
		response.Err(c, http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := h.JWT.Parse(token)
	if err != nil {
		h.Logger.WithError(err).Debug("validate: token rejected")
		response.Err(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	u, backend, err := h.Svc.Lookup(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": claims.UserID, "backend": backend}).Info("validate: user not found")
		response.Err(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  response.NewUser(u),
		"valid": true,
	})
}
