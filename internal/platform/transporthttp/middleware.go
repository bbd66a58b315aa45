package transporthttp

import (
	"time"

	"github.com/andreypavlenko/matchengine/internal/platform/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchIDMiddleware adds a unique match ID to each request, echoed
// back on the response so a caller can correlate it with engine logs.
func MatchIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.GetHeader("X-Match-ID")
		if matchID == "" {
			matchID = uuid.New().String()
		}
		c.Set("match_id", matchID)
		c.Header("X-Match-ID", matchID)
		c.Next()
	}
}

// LoggerMiddleware logs each request.
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		matchID, _ := c.Get("match_id")

		c.Next()

		duration := time.Since(start).Milliseconds()
		statusCode := c.Writer.Status()

		logEntry := log.WithMatchID(matchID.(string)).
			WithDuration(duration)

		fields := []zap.Field{zap.Int("status", statusCode), zap.String("path", path), zap.String("method", method)}

		switch {
		case statusCode >= 500:
			logEntry.Error("request completed", fields...)
		case statusCode >= 400:
			logEntry.Warn("request completed", fields...)
		default:
			logEntry.Info("request completed", fields...)
		}
	}
}

// CORSMiddleware handles CORS.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Match-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
