package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/hyesung/dartview/internal/api/handlers"
	"github.com/hyesung/dartview/pkg/logger"
	"github.com/hyesung/dartview/web"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	financial *handlers.FinancialHandler,
	explain *handlers.ExplainHandler,
	company *handlers.CompanyHandler,
	statement *handlers.StatementHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/financial", financial.Get).Methods("GET")
	api.HandleFunc("/explain", explain.Post).Methods("POST")
	api.HandleFunc("/companies/search", company.Search).Methods("GET")
	api.HandleFunc("/companies/{corpCode}", company.Get).Methods("GET")
	api.HandleFunc("/statement", statement.Get).Methods("GET")

	// Static client bundle
	r.PathPrefix("/").Handler(http.FileServer(http.FS(web.StaticFS())))

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	// CORS is fully open; the client is same-origin, the API is public
	return cors.AllowAll().Handler(r)
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"status":  "error",
						"message": "서버 오류가 발생했습니다.",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
