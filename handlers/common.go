package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// corsHeaders are the permissive defaults the browser client relies on.
// They are applied to every response, pre-flight included.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

func applyCORS(w http.ResponseWriter) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
}

// writeJSON sends a JSON response with CORS headers applied.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	applyCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeNoContent sends a bodyless response with CORS headers applied.
func writeNoContent(w http.ResponseWriter, status int) {
	applyCORS(w)
	w.WriteHeader(status)
}

// bearerToken extracts the bearer credential from the Authorization header,
// or returns "" if the header is absent or malformed.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// Preflight handles OPTIONS requests for the CORS pre-flight exchange.
func Preflight(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	writeNoContent(w, http.StatusNoContent)
}

// logRequest logs the request with route/auth details pulled from the
// httpserver context, plus any custom fields (e.g. zap.Error for errors).
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	routeName := httpserver.GetRouteName(ctx)
	method := httpserver.GetRouteMethod(ctx)
	path := httpserver.GetRoutePath(ctx)
	auth := httpserver.GetRequestAuth(ctx)

	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + method + " - " + path
	if auth != nil {
		logMsg += " - client:" + auth.Client
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", method),
		zap.String("path", path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}
