package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"oneclarity/internal/repository"
	"oneclarity/internal/service"
	"oneclarity/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	TutorService    *service.TutorService
	ProgressService *service.ProgressService
	StudentRepo     repository.StudentRepo
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	tutorHandler := handler.NewTutorHandler(c.TutorService)
	progressHandler := handler.NewProgressHandler(c.ProgressService, c.TutorService)
	studentHandler := handler.NewStudentHandler(c.StudentRepo)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/students", studentHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/ask", tutorHandler.Ask).Methods("GET", "OPTIONS")
	v1.HandleFunc("/quiz", tutorHandler.Quiz).Methods("GET", "OPTIONS")
	v1.HandleFunc("/answers", tutorHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/progress/{studentId}", progressHandler.Progress).Methods("GET", "OPTIONS")
	v1.HandleFunc("/interactions/{studentId}", progressHandler.Interactions).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
