package middleware

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
)

// LoggerMiddleware writes an access log line for every request.
func LoggerMiddleware(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}
