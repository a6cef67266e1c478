package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/aceitera/internal/core/logger"
)

const maxLoggedBodySize = 16 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// errorBodyWriter keeps a bounded copy of the response so failed requests
// can be logged with the error kind the client saw.
type errorBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *errorBodyWriter) Write(b []byte) (int, error) {
	if w.body.Len()+len(b) <= maxLoggedBodySize {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *errorBodyWriter) WriteString(s string) (int, error) {
	if w.body.Len()+len(s) <= maxLoggedBodySize {
		w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		c.Writer = &errorBodyWriter{ResponseWriter: c.Writer, body: buf}

		c.Next()

		status := c.Writer.Status()
		attrs := map[string]any{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.route":       c.FullPath(),
			"http.status_code": status,
			"http.duration_ms": time.Since(start).Milliseconds(),
			"http.client_ip":   c.ClientIP(),
		}
		if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
			attrs["idempotency_key"] = key
		}
		if status >= http.StatusBadRequest && buf.Len() > 0 {
			attrs["http.response_body"] = buf.String()
		}

		level := logger.LogLevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = logger.LogLevelError
		case status >= http.StatusBadRequest:
			level = logger.LogLevelWarn
		}

		logger.Log(c.Request.Context(), logger.LogEntry{
			Level:      level,
			Message:    "HTTP Request",
			Attributes: attrs,
		})
	}
}
