package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HealthHandler reports server, database, and provider status. db is nil
// when no persistence backend was configured.
type HealthHandler struct {
	db             *sqlx.DB
	groqConfigured bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, groqConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, groqConfigured: groqConfigured}
}

// Test handles GET /api/test
func (h *HealthHandler) Test(c *gin.Context) {
	database := "Not connected (using localStorage)"
	if h.db != nil {
		database = "Connected"
	}
	groq := "API key missing"
	if h.groqConfigured {
		groq = "API key configured"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Backend server running with Groq AI integration!",
		"database":  database,
		"groq":      groq,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	database := "disconnected"
	if h.db != nil && h.db.PingContext(c.Request.Context()) == nil {
		database = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"server":   "running",
		"database": database,
		"groq":     h.groqConfigured,
	})
}
