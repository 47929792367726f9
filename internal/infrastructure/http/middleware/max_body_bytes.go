package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

const payloadTooLargeCode = "PAYLOAD_TOO_LARGE"

// MaxBodyBytes creates a middleware that limits request body size.
// Uses a two-phase approach:
// 1. Fast path: Check Content-Length header for early rejection
// 2. Slow path: Read and verify body (handles chunked encoding and missing headers)
//
// Returns 413 Request Entity Too Large in the standard envelope if the limit is exceeded,
// and 400 if the body could not be read for any other reason.
func MaxBodyBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Content-Length of -1 means unknown (chunked encoding), so skip this check
			if r.ContentLength > maxBytes {
				tooLarge(w)
				return
			}

			body := http.MaxBytesReader(w, r.Body, maxBytes)
			buf, err := io.ReadAll(body)
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					slog.WarnContext(r.Context(), "Request body size limit exceeded",
						"method", r.Method,
						"path", r.URL.Path,
						"content_length", r.ContentLength,
						"limit", maxBytes)
					tooLarge(w)
					return
				}

				// Client abort or read timeout
				slog.WarnContext(r.Context(), "Failed to read request body",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err)
				response.BadRequest(w, "failed to read request body", "Failed")
				return
			}

			// Body is within limit - replace it so handlers can read it
			r.Body = io.NopCloser(bytes.NewReader(buf))
			next.ServeHTTP(w, r)
		})
	}
}

func tooLarge(w http.ResponseWriter) {
	response.Error(w, http.StatusRequestEntityTooLarge, payloadTooLargeCode, "request body exceeds size limit", "Failed")
}
