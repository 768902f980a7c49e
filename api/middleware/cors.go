package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",         // local dev
	"http://localhost:5173",         // vite dev server
	"https://solevibe.vercel.app",   // storefront
	"https://www.solevibe.store",    // custom domain
}

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Storefront-Token", "Idempotency-Key", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Storefront-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
