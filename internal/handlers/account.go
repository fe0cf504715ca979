package handlers

import (
	"errors"
	"net/http"

	"github.com/lluuk/tweeter-api/internal/auth"
	dom "github.com/lluuk/tweeter-api/internal/domain"
	"github.com/lluuk/tweeter-api/internal/dto"
	"github.com/lluuk/tweeter-api/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

// AccountHandler handles signup, login, logout, profiles and the follow graph.
type AccountHandler struct {
	sessions auth.Sessions
	accounts *service.AccountService
}

// NewAccountHandler returns a new AccountHandler.
func NewAccountHandler(sessions auth.Sessions, accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{sessions: sessions, accounts: accounts}
}

// Signup godoc
// @Summary      Create a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupRequest  true  "Credentials and profile"
// @Success      201   {object}  map[string]dto.AccountResponse
// @Failure      400   {object}  map[string]string
// @Router       /signup [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.accounts.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrInvalidName),
			errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": accountToResponse(a)})
}

// Login godoc
// @Summary      Login with email and password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]dto.AccountResponse
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.accounts.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	sessionID, err := h.sessions.Create(c.Request.Context(), a.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.SetCookie(sessionCookieName, sessionID, 24*60*60, "/", "", false, true) // 24h, httpOnly
	c.JSON(http.StatusOK, gin.H{"user": accountToResponse(a)})
}

// Logout godoc
// @Summary      Logout
// @Tags         accounts
// @Security     CookieAuth
// @Success      200
// @Router       /logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusOK)
}

// Me godoc
// @Summary      Get the authenticated account
// @Tags         accounts
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  map[string]string
// @Router       /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	a, err := h.accounts.GetByID(c.Request.Context(), auth.AccountIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accountToResponse(a))
}

// GetUser godoc
// @Summary      Get an account by ID
// @Tags         accounts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *AccountHandler) GetUser(c *gin.Context) {
	a, err := h.accounts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accountToResponse(a))
}

// Follow godoc
// @Summary      Follow an account
// @Tags         accounts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Target account ID"
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /follow/{id} [post]
func (h *AccountHandler) Follow(c *gin.Context) {
	actorID := auth.AccountIDFromContext(c)
	target, err := h.accounts.Follow(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, accountToResponse(target))
}

// Unfollow godoc
// @Summary      Unfollow an account
// @Tags         accounts
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Target account ID"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /follow/{id} [delete]
func (h *AccountHandler) Unfollow(c *gin.Context) {
	actorID := auth.AccountIDFromContext(c)
	target, err := h.accounts.Unfollow(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accountToResponse(target))
}

func accountToResponse(a dom.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Followers: a.Followers,
		Following: a.Following,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
