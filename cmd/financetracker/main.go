package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/joho/godotenv"

	database "financetracker/db"
	"financetracker/internal/auth"
	"financetracker/internal/finance/application"
	"financetracker/internal/finance/infrastructure"
	"financetracker/internal/finance/interfaces"
	"financetracker/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	userHandler        *user.Handler
	authService        auth.Service
	categoryHandler    *interfaces.CategoryHandler
	transactionHandler *interfaces.TransactionHandler
	dbService          *database.DBService
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	categoryHandler *interfaces.CategoryHandler,
	transactionHandler *interfaces.TransactionHandler,
	dbService *database.DBService,
) *Server {
	return &Server{
		authHandler:        authHandler,
		userHandler:        userHandler,
		authService:        authService,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
		dbService:          dbService,
		router:             http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  health["error"],
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	withAuth := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/auth/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", withAuth(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("DELETE /api/protected/auth/account", withAuth(http.HandlerFunc(s.authHandler.HandleDeleteAccount)))

	// CATEGORY API
	protectedRoutes.Handle("GET /api/protected/category", withAuth(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("POST /api/protected/category", withAuth(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("GET /api/protected/category/{id}", withAuth(http.HandlerFunc(s.categoryHandler.GetCategoryByID)))
	protectedRoutes.Handle("PUT /api/protected/category/{id}", withAuth(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/category/{id}", withAuth(http.HandlerFunc(s.categoryHandler.DeleteCategory)))
	protectedRoutes.Handle("GET /api/protected/category/{id}/transactions", withAuth(http.HandlerFunc(s.categoryHandler.GetCategoryTransactions)))

	// TRANSACTION API
	protectedRoutes.Handle("GET /api/protected/transaction", withAuth(http.HandlerFunc(s.transactionHandler.GetTransactions)))
	protectedRoutes.Handle("POST /api/protected/transaction", withAuth(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transaction/{id}", withAuth(http.HandlerFunc(s.transactionHandler.GetTransactionByID)))
	protectedRoutes.Handle("PUT /api/protected/transaction/{id}", withAuth(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transaction/{id}", withAuth(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.Migrate(dbService.DB); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	userRepo := user.NewUserRepository(dbService.DB)
	jwtManager := auth.NewJWTManager()

	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)

	categoryService := application.NewCategoryService(categoryRepo, transactionRepo)
	transactionService := application.NewTransactionService(transactionRepo, categoryRepo)

	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	server := NewServer(authHandler, authService, userHandler, categoryHandler, transactionHandler, dbService)
	server.RegisterRoutes()

	handler := loggingMiddleware(server.router)
	log.Println("Starting perf on port 6060...")
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
