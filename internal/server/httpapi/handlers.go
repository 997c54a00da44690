// Package httpapi exposes the Mood-Tracker backend over HTTP/JSON. Every
// error response carries a human-readable detail under the "error" key.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khmorad/Mood-Tracker/internal/common"
	"github.com/khmorad/Mood-Tracker/internal/server/emotions"
	"github.com/khmorad/Mood-Tracker/internal/server/entries"
	"github.com/khmorad/Mood-Tracker/internal/server/users"
)

// UserService is the slice of the users service the handlers depend on.
type UserService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*users.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ActivatePlan(ctx context.Context, userID, plan string) (*users.PlanActivation, error)
}

// EntryService persists and lists journal entries.
type EntryService interface {
	Create(ctx context.Context, entry *entries.Entry) (*entries.Entry, error)
	ListByUser(ctx context.Context, userID string) ([]entries.Entry, error)
}

// GenerateService produces assistant replies. It never fails; upstream
// trouble is masked by a fallback reply.
type GenerateService interface {
	Generate(ctx context.Context, message string) string
}

// SpeechService renders text to a playable audio URL.
type SpeechService interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// EmotionService reads stored analysis records and triggers on-demand
// analysis for one user-day.
type EmotionService interface {
	ListByUser(ctx context.Context, userID, journalDate string) ([]emotions.Record, error)
	ListRange(ctx context.Context, userID, startDate, endDate string) ([]emotions.Record, error)
	AnalyzeUserDay(ctx context.Context, userID, journalDate string) (bool, error)
}

type Handlers struct {
	userService     UserService
	entryService    EntryService
	generateService GenerateService
	speechService   SpeechService
	emotionService  EmotionService
}

func NewHandlers(us UserService, es EntryService, gs GenerateService, ss SpeechService, ems EmotionService) *Handlers {
	return &Handlers{
		userService:     us,
		entryService:    es,
		generateService: gs,
		speechService:   ss,
		emotionService:  ems,
	}
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	_, err := h.userService.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidLoginFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		case errors.Is(err, common.ErrorLoginAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *Handlers) ListEntries(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}
	if claims := claimsFrom(c); claims == nil || claims.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's journal"})
		return
	}

	out, err := h.entryService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load journal entries"})
		return
	}
	if out == nil {
		out = []entries.Entry{}
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateEntry(c *gin.Context) {
	var entry entries.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if claims := claimsFrom(c); claims == nil || claims.UserID != entry.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot write another user's journal"})
		return
	}

	created, err := h.entryService.Create(c.Request.Context(), &entry)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save journal entry"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

type generateRequest struct {
	Message string `json:"message"`
}

func (h *Handlers) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply := h.generateService.Generate(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"message": reply})
}

type speechRequest struct {
	Text string `json:"text"`
}

func (h *Handlers) TextToSpeech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	url, err := h.speechService.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "speech synthesis is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handlers) ListEmotions(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}
	if claims := claimsFrom(c); claims == nil || claims.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's emotions"})
		return
	}

	out, err := h.emotionService.ListByUser(c.Request.Context(), userID, c.Query("journal_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load emotion records"})
		return
	}
	if out == nil {
		out = []emotions.Record{}
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handlers) AnalyzeEmotions(c *gin.Context) {
	claims := claimsFrom(c)

	userID := c.Query("user_id")
	if userID == "" && claims != nil {
		userID = claims.UserID
	}
	if claims == nil || claims.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot analyze another user's emotions"})
		return
	}

	targetDate := c.Query("target_date")
	if targetDate == "" {
		targetDate = time.Now().Format(common.JournalDateLayout)
	} else if _, err := time.Parse(common.JournalDateLayout, targetDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	analyzed, err := h.emotionService.AnalyzeUserDay(c.Request.Context(), userID, targetDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "emotion analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"date":    targetDate,
		"success": analyzed,
	})
}

func (h *Handlers) EmotionSummary(c *gin.Context) {
	userID := c.Param("user_id")
	if claims := claimsFrom(c); claims == nil || claims.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's emotions"})
		return
	}

	out, err := h.emotionService.ListRange(c.Request.Context(), userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load emotion summary"})
		return
	}
	if out == nil {
		out = []emotions.Record{}
	}

	c.JSON(http.StatusOK, out)
}

type activatePlanRequest struct {
	UserID string `json:"user_id"`
	Plan   string `json:"plan"`
}

func (h *Handlers) ActivatePlan(c *gin.Context) {
	var req activatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if claims := claimsFrom(c); claims == nil || claims.UserID != req.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot change another user's plan"})
		return
	}

	out, err := h.userService.ActivatePlan(c.Request.Context(), req.UserID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnknownSubscription):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown subscription plan"})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "plan activation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              out.Message,
		"subscription_tier":    out.SubscriptionTier,
		"subscription_expires": out.SubscriptionExpires,
	})
}
