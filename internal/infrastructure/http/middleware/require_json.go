package middleware

import (
	"mime"
	"net/http"

	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

// RequireJSON rejects requests whose Content-Type is not application/json
// with 415 Unsupported Media Type in the standard envelope.
// Parameters such as charset are allowed.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			response.Error(w, http.StatusUnsupportedMediaType, response.CodeUnsupportedMediaType,
				"Content-Type must be application/json", "Failed")
			return
		}
		next.ServeHTTP(w, r)
	})
}
