package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type accessLogEntry struct {
	Timestamp string  `json:"ts"`
	Level     string  `json:"level"`
	Hostname  string  `json:"host"`
	RequestID string  `json:"request_id,omitempty"`
	ClientIP  string  `json:"ip"`
	Method    string  `json:"method"`
	Path      string  `json:"path"`
	Status    int     `json:"status"`
	LatencyMs float64 `json:"latencyMs"`
	UserAgent string  `json:"ua"`
	BodySize  int     `json:"size"`
	Error     string  `json:"error,omitempty"`
}

// LoggerMiddleware writes one JSON access log line per request to stdout.
// Request bodies are never logged; they may carry passwords.
func LoggerMiddleware() gin.HandlerFunc {
	return LoggerMiddlewareTo(os.Stdout)
}

func LoggerMiddlewareTo(out io.Writer) gin.HandlerFunc {
	hostname, _ := os.Hostname()
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: out,
		Formatter: func(param gin.LogFormatterParams) string {
			level := "info"
			switch {
			case param.StatusCode >= 500:
				level = "error"
			case param.StatusCode >= 400:
				level = "warn"
			}

			entry := accessLogEntry{
				Timestamp: param.TimeStamp.UTC().Format(time.RFC3339Nano),
				Level:     level,
				Hostname:  hostname,
				RequestID: param.Request.Header.Get(RequestIDHeader),
				ClientIP:  param.ClientIP,
				Method:    param.Method,
				Path:      param.Path,
				Status:    param.StatusCode,
				LatencyMs: float64(param.Latency) / float64(time.Millisecond),
				UserAgent: param.Request.UserAgent(),
				BodySize:  param.BodySize,
				Error:     param.ErrorMessage,
			}
			if id, ok := param.Keys[RequestIDKey].(string); ok {
				entry.RequestID = id
			}
			b, _ := json.Marshal(entry)
			return string(b) + "\n"
		},
	})
}
