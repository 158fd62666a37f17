package server

import (
	"context"
	"net/http"
	"os"
	"strings"

	cachepackage "todo-service/cache"
	"todo-service/config"
	"todo-service/handlers"
	"todo-service/services"
	"todo-service/storage"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// newAuthCheck builds the authentication hook for bearer routes. It resolves
// the Authorization header against the users collection; a token stays valid
// until a later login for the same user overwrites it.
func newAuthCheck(auth *services.AuthService) func(r *http.Request) (bool, httpserver.RequestAuth) {
	return func(r *http.Request) (bool, httpserver.RequestAuth) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return false, httpserver.RequestAuth{}
		}

		user, err := auth.Resolve(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return false, httpserver.RequestAuth{}
		}

		return true, httpserver.RequestAuth{
			Type:   "bearer",
			Client: user.Email,
			Claims: map[string]interface{}{"user_id": user.ID, "name": user.Name},
		}
	}
}

func StartServer() {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Todo Service...")

	cfg := config.Load()

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to initialize storage", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Storage initialized", zap.String("dir", store.Dir()))

	// Initialize cache
	cache := cachepackage.InitializeCache()
	defer cache.Close()

	// Initialize services and handlers
	authService := services.NewAuthService(store)
	todoService := services.NewTodoService(store)

	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService, authService, cache)

	// Create HTTP server with authentication
	server := httpserver.New(cfg.Port, newAuthCheck(authService))

	// Register routes
	server.Register(httpserver.Route{
		Name:     "HealthCheck",
		Method:   "GET",
		Path:     "/health",
		AuthType: "none",
	}, httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "todo-service"}`))
	}))

	server.Register(httpserver.Route{
		Name:     "Register",
		Method:   "POST",
		Path:     "/register",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Register))

	server.Register(httpserver.Route{
		Name:     "Login",
		Method:   "POST",
		Path:     "/login",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Login))

	server.Register(httpserver.Route{
		Name:     "ListTodos",
		Method:   "GET",
		Path:     "/todos",
		AuthType: "bearer",
	}, httpserver.HandlerFunc(todoHandler.List))

	server.Register(httpserver.Route{
		Name:     "CreateTodo",
		Method:   "POST",
		Path:     "/todos",
		AuthType: "bearer",
	}, httpserver.HandlerFunc(todoHandler.Create))

	server.Register(httpserver.Route{
		Name:     "GetTodo",
		Method:   "GET",
		Path:     "/todos/{id}",
		AuthType: "bearer",
	}, httpserver.HandlerFunc(todoHandler.Get))

	server.Register(httpserver.Route{
		Name:     "UpdateTodo",
		Method:   "PUT",
		Path:     "/todos/{id}",
		AuthType: "bearer",
	}, httpserver.HandlerFunc(todoHandler.Update))

	server.Register(httpserver.Route{
		Name:     "DeleteTodo",
		Method:   "DELETE",
		Path:     "/todos/{id}",
		AuthType: "bearer",
	}, httpserver.HandlerFunc(todoHandler.Delete))

	// Browser pre-flight requests must pass without auth.
	for _, path := range []string{"/register", "/login", "/todos", "/todos/{id}"} {
		server.Register(httpserver.Route{
			Name:     "Preflight " + path,
			Method:   "OPTIONS",
			Path:     path,
			AuthType: "none",
		}, httpserver.HandlerFunc(handlers.Preflight))
	}

	logger.Info("Todo Service started on port " + cfg.Port)
	logger.Info("Health check: GET /health")
	logger.Info("API endpoints: POST /register, POST /login, GET/POST/PUT/DELETE /todos")

	// Start server
	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
