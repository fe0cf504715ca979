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

// TweetHandler handles tweet and comment routes.
type TweetHandler struct {
	svc *service.TweetService
}

// NewTweetHandler returns a new TweetHandler.
func NewTweetHandler(svc *service.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

// Create godoc
// @Summary      Create a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTweetRequest  true  "Tweet body"
// @Success      201   {object}  map[string]dto.TweetResponse
// @Failure      400   {object}  map[string]string
// @Router       /tweet [post]
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.AccountIDFromContext(c), req.Body)
	if err != nil {
		// Validation and store failures both surface as 400 on create.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tweet": tweetToResponse(t)})
}

// Get godoc
// @Summary      Get a tweet by ID
// @Tags         tweets
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Tweet ID"
// @Success      200  {object}  dto.TweetResponse
// @Failure      404  {object}  map[string]string
// @Router       /tweet/{id} [get]
func (h *TweetHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tweetToResponse(t))
}

// Delete godoc
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Tweet ID"
// @Success      200  {object}  dto.TweetResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tweet/{id} [delete]
func (h *TweetHandler) Delete(c *gin.Context) {
	t, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tweetToResponse(t))
}

// List godoc
// @Summary      List the feed: tweets from followed accounts
// @Tags         tweets
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   dto.TweetResponse
// @Failure      500  {object}  map[string]string
// @Router       /tweets [get]
func (h *TweetHandler) List(c *gin.Context) {
	list, err := h.svc.Feed(c.Request.Context(), auth.AccountIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tweetsToResponses(list))
}

// Update godoc
// @Summary      Update a tweet body
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Tweet ID"
// @Param        body  body      dto.UpdateTweetRequest  true  "New body"
// @Success      200   {object}  dto.TweetResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tweet/{id} [patch]
func (h *TweetHandler) Update(c *gin.Context) {
	var req dto.UpdateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.UpdateBody(c.Request.Context(), c.Param("id"), req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrEmptyBody), errors.Is(err, service.ErrBodyTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, tweetToResponse(t))
}

// AddComment godoc
// @Summary      Add a comment to a tweet
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Tweet ID"
// @Param        body  body      dto.CommentRequest  true  "Comment text"
// @Success      201   {object}  map[string]dto.TweetResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tweet/{id}/comment [post]
func (h *TweetHandler) AddComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.AddComment(c.Request.Context(), c.Param("id"), auth.AccountIDFromContext(c), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrEmptyBody), errors.Is(err, service.ErrBodyTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tweet": tweetToResponse(t)})
}

// UpdateComment godoc
// @Summary      Update a comment body
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id         path      string  true  "Tweet ID"
// @Param        commentId  path      string  true  "Comment ID"
// @Param        body       body      dto.CommentRequest  true  "New comment text"
// @Success      200        {object}  dto.TweetResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /tweet/{id}/comment/{commentId} [patch]
func (h *TweetHandler) UpdateComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.UpdateComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrEmptyBody), errors.Is(err, service.ErrBodyTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, tweetToResponse(t))
}

// RemoveComment godoc
// @Summary      Remove a comment from a tweet
// @Tags         comments
// @Produce      json
// @Security     CookieAuth
// @Param        id         path      string  true  "Tweet ID"
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  dto.TweetResponse
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /tweet/{id}/comment/{commentId} [delete]
func (h *TweetHandler) RemoveComment(c *gin.Context) {
	t, err := h.svc.RemoveComment(c.Request.Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tweetToResponse(t))
}

func tweetToResponse(t dom.Tweet) dto.TweetResponse {
	comments := make([]dto.CommentResponse, len(t.Comments))
	for i, c := range t.Comments {
		comments[i] = dto.CommentResponse{
			ID:        c.ID,
			Body:      c.Body,
			Author:    c.AuthorID,
			Favorites: c.Favorites,
			CreatedAt: c.CreatedAt,
		}
	}
	return dto.TweetResponse{
		ID:        t.ID,
		Body:      t.Body,
		Author:    t.AuthorID,
		Favorites: t.Favorites,
		Comments:  comments,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tweetsToResponses(list []dom.Tweet) []dto.TweetResponse {
	out := make([]dto.TweetResponse, len(list))
	for i := range list {
		out[i] = tweetToResponse(list[i])
	}
	return out
}
