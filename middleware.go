package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/crewjam/csp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"
)

const (
	csrfFieldName   = "_csrf"
	requestIDHeader = "X-Request-ID"
)

var hashingSalt = generateSalt()

func generateSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("failed to generate hashing salt")
	}
	return hex.EncodeToString(b)
}

// Hash IP address so logs never hold a raw client address (consistent per IP
// for the life of the process)
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + hashingSalt))
	return hex.EncodeToString(sum[:])[:16]
}

func quietPath(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/images/") ||
		strings.HasPrefix(path, "/favicon") ||
		path == "/healthz"
}

// requestLogger tags every request with an id, stores a request-scoped
// logger in the request context and logs the outcome.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		l := log.Logger.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		path := c.Request.URL.Path
		if quietPath(path) {
			return
		}

		evt := l.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = l.Error()
		}
		evt = evt.Str("component", "http").
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start))
		// Respect Do Not Track header
		if c.GetHeader("DNT") != "1" {
			evt = evt.Str("client", hashIP(c.ClientIP()))
		}
		evt.Msg("request handled")
	}
}

var contentSecurityPolicy = csp.Header{
	DefaultSrc: []string{"'self'"},
	ScriptSrc:  []string{"'self'", "https://unpkg.com", "https://cdn.tailwindcss.com"},
	StyleSrc:   []string{"'self'", "'unsafe-inline'"},
	ImgSrc:     []string{"'self'", "data:"},
}.String()

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", contentSecurityPolicy)
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("X-Frame-Options", "DENY")
		c.Next()
	}
}

// protect wraps the engine with CSRF checks for every state-changing request.
func protect(h http.Handler, key []byte, secure bool) http.Handler {
	return csrf.Protect(key,
		csrf.Secure(secure),
		csrf.FieldName(csrfFieldName),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)(h)
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	log.Warn().
		Str("component", "http").
		Err(csrf.FailureReason(r)).
		Str("path", r.URL.Path).
		Msg("csrf check failed")
	http.Error(w, "Forbidden - the form expired, please reload the page.", http.StatusForbidden)
}
